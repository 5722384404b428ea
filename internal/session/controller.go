package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamoruimade/basicChatFeature/internal/completion"
	"github.com/mamoruimade/basicChatFeature/model"
)

// Source provides prompts and documents. contextsource.Source satisfies it.
type Source interface {
	ListPrompts() ([]string, error)
	LoadPrompt(name string) (model.PromptAsset, error)
	ListDocuments() ([]string, error)
	ExtractDocument(name string) (*model.DocumentAsset, error)
	LoadPrePrompt() (string, error)
}

// Completer sends one system+user exchange. completion.Client satisfies it.
type Completer interface {
	Send(ctx context.Context, system, user string) (string, error)
}

// ErrorSink records failures and returns a notice for the user.
type ErrorSink interface {
	Record(message, rawBody string) string
}

// SummarySink stores summaries by document title.
type SummarySink interface {
	Write(title, text string) (string, error)
}

// UI is the terminal surface. Choose lists items under title and reads a line
// after prompt. Choose and ReadLine return the raw line typed by the user; any
// error ends the session.
type UI interface {
	Choose(ctx context.Context, title string, items []string, prompt string) (string, error)
	ReadLine(ctx context.Context, prompt string) (string, error)
	Show(msg string)
	ShowError(msg string)
	ShowReply(label, text string)
}

// Controller drives a Session by executing its effects.
type Controller struct {
	session   *Session
	source    Source
	llm       Completer
	errs      ErrorSink
	summaries SummarySink
	ui        UI
	logger    *zap.Logger
}

// NewController creates a Controller around a fresh Session.
func NewController(source Source, llm Completer, errs ErrorSink, summaries SummarySink, ui UI, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := New(uuid.NewString())
	return &Controller{
		session:   s,
		source:    source,
		llm:       llm,
		errs:      errs,
		summaries: summaries,
		ui:        ui,
		logger:    logger.With(zap.String("session_id", s.ID)),
	}
}

// Session returns the session being driven.
func (c *Controller) Session() *Session { return c.session }

// Run drives the session until it terminates. It returns the session error,
// if any; ErrInvalidSelection means the user typed an invalid choice.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("session started")
	queue := c.apply(Started{})
	for len(queue) > 0 {
		eff := queue[0]
		queue = queue[1:]

		var ev Event
		if ctx.Err() != nil {
			ev = InputClosed{}
		} else {
			ev = c.execute(ctx, eff)
		}
		if ev != nil {
			queue = append(queue, c.apply(ev)...)
		}
	}
	c.logger.Info("session ended", zap.String("state", string(c.session.State)), zap.Error(c.session.Err))
	return c.session.Err
}

func (c *Controller) apply(ev Event) []Effect {
	from := c.session.State
	to, effects := c.session.Apply(ev)
	c.logger.Debug("transition",
		zap.String("event", fmt.Sprintf("%T", ev)),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("mode", string(c.session.Mode)))
	return effects
}

func (c *Controller) execute(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case SelectPrompt:
		return c.selectPrompt(ctx)
	case SelectDocument:
		return c.selectDocument(ctx)
	case RequestCompletion:
		text, err := c.llm.Send(ctx, eff.System, eff.User)
		if err != nil {
			return CompletionFailed{Err: err}
		}
		return CompletionDone{Text: text}
	case SaveSummary:
		path, err := c.summaries.Write(eff.Title, eff.Text)
		if err != nil {
			return SummaryFailed{Err: err}
		}
		c.logger.Info("summary saved", zap.String("path", path))
		return SummarySaved{Path: path}
	case LoadPrePrompt:
		text, err := c.source.LoadPrePrompt()
		if err != nil {
			c.logger.Warn("pre-prompt unavailable", zap.Error(err))
			return PrePromptFailed{Err: err}
		}
		return PrePromptLoaded{Text: text}
	case ReadInput:
		line, err := c.ui.ReadLine(ctx, eff.Prompt)
		if err != nil {
			return InputClosed{}
		}
		return UserInput{Text: line}
	case ShowMenu:
		raw, err := c.ui.Choose(ctx, "Select an option:", Labels(eff.Options), eff.Prompt)
		if err != nil {
			return InputClosed{}
		}
		return MenuChosen{Choice: raw}
	case ShowReply:
		c.ui.ShowReply(eff.Label, eff.Text)
	case Notify:
		if eff.Error {
			c.ui.ShowError(eff.Message)
		} else {
			c.ui.Show(eff.Message)
		}
	case RecordFailure:
		c.recordFailure(eff.Err)
	}
	return nil
}

func (c *Controller) selectPrompt(ctx context.Context) Event {
	names, err := c.source.ListPrompts()
	if err != nil {
		return PromptFailed{Err: err}
	}
	if len(names) == 0 {
		return PromptFailed{Err: errors.New("no system prompt files found")}
	}
	raw, err := c.ui.Choose(ctx, "Select a system prompt file by entering its number:", names, ListInputPrompt)
	if err != nil {
		return InputClosed{}
	}
	i, err := ParseChoice(raw, len(names))
	if err != nil {
		return SelectionInvalid{Input: raw}
	}
	asset, err := c.source.LoadPrompt(names[i])
	if err != nil {
		return PromptFailed{Err: err}
	}
	c.logger.Info("prompt selected", zap.String("prompt", asset.Name))
	return PromptChosen{Asset: asset}
}

func (c *Controller) selectDocument(ctx context.Context) Event {
	names, err := c.source.ListDocuments()
	if err != nil {
		return DocumentFailed{Err: err}
	}
	if len(names) == 0 {
		return DocumentsEmpty{}
	}
	raw, err := c.ui.Choose(ctx, "Select a PDF file by entering its number:", names, ListInputPrompt)
	if err != nil {
		return InputClosed{}
	}
	i, err := ParseChoice(raw, len(names))
	if err != nil {
		return SelectionInvalid{Input: raw}
	}
	doc, err := c.source.ExtractDocument(names[i])
	if err != nil {
		return DocumentFailed{Err: err}
	}
	c.logger.Info("document selected", zap.String("document", doc.Name), zap.Int("chars", len(doc.Text)))
	return DocumentChosen{Doc: doc}
}

func (c *Controller) recordFailure(err error) {
	var rawBody string
	var f *completion.Failure
	if errors.As(err, &f) {
		rawBody = f.RawBody
		switch f.Kind {
		case completion.KindHTTPStatus:
			c.ui.ShowError("HTTP error occurred: " + f.Detail)
			c.ui.ShowError("Response content: " + f.RawBody)
		case completion.KindTransport:
			c.ui.ShowError("Request error occurred: " + f.Detail)
		default:
			c.ui.ShowError("Unexpected response format: " + f.Detail)
		}
		c.logger.Error("completion failed",
			zap.String("kind", string(f.Kind)), zap.Int("status", f.StatusCode),
			zap.String("body_preview", model.Truncate(f.RawBody, 200)))
	} else {
		c.ui.ShowError("An unexpected error occurred: " + err.Error())
		c.logger.Error("completion failed", zap.Error(err))
	}
	c.ui.Show(c.errs.Record(err.Error(), rawBody))
}
