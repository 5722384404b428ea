// Package session implements the interactive session state machine.
//
// Session.Apply is a pure transition function: it takes an event, updates the
// session and returns the effects the Controller must carry out. Effects that
// need the outside world (reading input, loading files, calling the model)
// come back as new events.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mamoruimade/basicChatFeature/internal/contextsource"
	"github.com/mamoruimade/basicChatFeature/model"
)

// State is the position of a session in its lifecycle.
type State string

const (
	StateSelectingPrompt  State = "selecting_prompt"
	StateAwaitingDocument State = "awaiting_document"
	StateSummarizing      State = "summarizing"
	StateConversing       State = "conversing"
	StateMenuIdle         State = "menu_idle"
	StateTerminated       State = "terminated"
)

// ErrInvalidSelection ends a session when a numbered choice is out of range
// or not a number.
var ErrInvalidSelection = errors.New("invalid selection")

// Input prompts shown before reading a line.
const (
	ConversePrompt  = "Enter your prompt (type 'exit' to return to menu): "
	MenuInputPrompt = "Enter your choice: "
	ListInputPrompt = "Enter the number: "
)

// Session is the in-memory state of one interactive run.
type Session struct {
	ID    string
	State State
	Mode  model.Mode

	Prompt   *model.PromptAsset
	Document *model.DocumentAsset
	// System is the active system message.
	System string
	// Turns holds the current sub-conversation, system turn first.
	Turns []model.Turn

	// Err is set when the session terminated abnormally.
	Err error
}

// New creates a session waiting for Started.
func New(id string) *Session {
	return &Session{ID: id}
}

// Apply advances the session by one event.
func (s *Session) Apply(ev Event) (State, []Effect) {
	if s.State == StateTerminated {
		return s.State, nil
	}
	effects := s.apply(ev)
	return s.State, effects
}

func (s *Session) apply(ev Event) []Effect {
	switch ev := ev.(type) {
	case Started:
		if s.State != "" {
			return s.unexpected(ev)
		}
		s.State = StateSelectingPrompt
		return []Effect{SelectPrompt{}}

	case InputClosed:
		s.State = StateTerminated
		return nil

	case SelectionInvalid:
		return s.invalidSelection(ev.Input)

	case PromptChosen:
		if s.State != StateSelectingPrompt {
			return s.unexpected(ev)
		}
		return s.usePrompt(ev.Asset)

	case PromptFailed:
		if s.State != StateSelectingPrompt {
			return s.unexpected(ev)
		}
		if s.Prompt == nil {
			s.State = StateTerminated
			s.Err = fmt.Errorf("selecting system prompt: %w", ev.Err)
			return []Effect{Notify{Message: ev.Err.Error(), Error: true}}
		}
		return append([]Effect{Notify{Message: ev.Err.Error(), Error: true}}, s.idle()...)

	case DocumentsEmpty:
		if s.State != StateAwaitingDocument {
			return s.unexpected(ev)
		}
		s.Document = nil
		return append([]Effect{Notify{Message: "No PDF files found in the paper folder."}}, s.idle()...)

	case DocumentFailed:
		if s.State != StateAwaitingDocument {
			return s.unexpected(ev)
		}
		s.Document = nil
		return append([]Effect{Notify{Message: ev.Err.Error(), Error: true}}, s.idle()...)

	case DocumentChosen:
		if s.State != StateAwaitingDocument {
			return s.unexpected(ev)
		}
		if ev.Doc == nil || ev.Doc.Text == "" {
			s.Document = nil
			msg := "No extractable text found in the selected PDF."
			if ev.Doc != nil {
				msg = fmt.Sprintf("No extractable text found in %s.", ev.Doc.Name)
			}
			return append([]Effect{Notify{Message: msg}}, s.idle()...)
		}
		s.Document = ev.Doc
		s.State = StateSummarizing
		return []Effect{
			Notify{Message: "Summarizing paper..."},
			RequestCompletion{System: s.System, User: ev.Doc.Text},
		}

	case CompletionDone:
		switch s.State {
		case StateSummarizing:
			return []Effect{
				ShowReply{Label: "Summarization Response:", Text: ev.Text},
				SaveSummary{Title: s.Document.Title, Text: ev.Text},
			}
		case StateConversing:
			s.Turns = append(s.Turns, model.Turn{Role: model.RoleAssistant, Content: ev.Text})
			return []Effect{
				ShowReply{Label: "Response:", Text: ev.Text},
				ReadInput{Prompt: ConversePrompt},
			}
		}
		return s.unexpected(ev)

	case CompletionFailed:
		switch s.State {
		case StateSummarizing:
			return append([]Effect{RecordFailure{Err: ev.Err}}, s.idle()...)
		case StateConversing:
			return []Effect{RecordFailure{Err: ev.Err}, ReadInput{Prompt: ConversePrompt}}
		}
		return s.unexpected(ev)

	case SummarySaved:
		if s.State != StateSummarizing {
			return s.unexpected(ev)
		}
		return append([]Effect{Notify{Message: "Summarization output saved as: " + ev.Path}}, s.idle()...)

	case SummaryFailed:
		if s.State != StateSummarizing {
			return s.unexpected(ev)
		}
		return append([]Effect{Notify{Message: ev.Err.Error(), Error: true}}, s.idle()...)

	case UserInput:
		if s.State != StateConversing {
			return s.unexpected(ev)
		}
		if IsExit(ev.Text) {
			return s.idle()
		}
		s.Turns = append(s.Turns, model.Turn{Role: model.RoleUser, Content: ev.Text})
		return []Effect{RequestCompletion{System: s.System, User: ev.Text}}

	case MenuChosen:
		if s.State != StateMenuIdle {
			return s.unexpected(ev)
		}
		return s.choose(ev.Choice)

	case PrePromptLoaded:
		if s.State != StateMenuIdle || s.Document == nil {
			return s.unexpected(ev)
		}
		s.Mode = model.ModePdfChat
		s.System = ev.Text + "\n" + s.Document.Text
		return append([]Effect{Notify{Message: "System prompt updated for chatting with PDF text."}}, s.converse()...)

	case PrePromptFailed:
		if s.State != StateMenuIdle {
			return s.unexpected(ev)
		}
		msg := fmt.Sprintf("%s not found in the system prompt folder. Cannot update system prompt.", contextsource.PrePrompt)
		return append([]Effect{Notify{Message: msg, Error: true}}, s.idle()...)
	}
	return s.unexpected(ev)
}

// usePrompt replaces the active prompt and picks the mode it implies.
func (s *Session) usePrompt(asset model.PromptAsset) []Effect {
	s.Prompt = &asset
	s.Document = nil
	s.System = asset.Content
	s.Turns = nil

	if contextsource.IsSummarizer(asset.Name) {
		s.Mode = model.ModePdfSummarize
		s.State = StateAwaitingDocument
		return []Effect{SelectDocument{}}
	}
	s.Mode = model.ModePlain
	return s.converse()
}

// converse starts a fresh sub-conversation on the active system message.
func (s *Session) converse() []Effect {
	s.State = StateConversing
	s.Turns = []model.Turn{{Role: model.RoleSystem, Content: s.System}}
	return []Effect{ReadInput{Prompt: ConversePrompt}}
}

func (s *Session) idle() []Effect {
	s.State = StateMenuIdle
	return []Effect{ShowMenu{Options: s.MenuOptions(), Prompt: MenuInputPrompt}}
}

func (s *Session) choose(raw string) []Effect {
	opt, ok := lookup(s.MenuOptions(), raw)
	if !ok {
		return s.invalidSelection(raw)
	}
	switch opt.Action {
	case ActionChangePrompt:
		s.State = StateSelectingPrompt
		return []Effect{SelectPrompt{}}
	case ActionReusePrompt:
		if s.Mode == model.ModePdfSummarize {
			s.State = StateAwaitingDocument
			return []Effect{SelectDocument{}}
		}
		return s.converse()
	case ActionChatDocument:
		return []Effect{LoadPrePrompt{}}
	default:
		s.State = StateTerminated
		return []Effect{Notify{Message: "Exiting conversation."}}
	}
}

func (s *Session) invalidSelection(raw string) []Effect {
	s.State = StateTerminated
	s.Err = fmt.Errorf("%w: %q", ErrInvalidSelection, raw)
	return []Effect{Notify{Message: "Invalid choice. Exiting conversation.", Error: true}}
}

func (s *Session) unexpected(ev Event) []Effect {
	from := s.State
	s.State = StateTerminated
	s.Err = fmt.Errorf("unexpected event %T in state %q", ev, from)
	return []Effect{Notify{Message: s.Err.Error(), Error: true}}
}

// IsExit reports whether a conversation line ends the sub-conversation.
func IsExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "exit")
}

// ParseChoice converts 1-based raw input into an index into n items.
func ParseChoice(raw string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, raw)
	}
	return i - 1, nil
}
