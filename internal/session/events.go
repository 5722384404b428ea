package session

import "github.com/mamoruimade/basicChatFeature/model"

// Event is a fact fed into Session.Apply.
type Event interface{ isEvent() }

type (
	// Started begins a session.
	Started struct{}
	// PromptChosen carries the prompt the user picked.
	PromptChosen struct{ Asset model.PromptAsset }
	// PromptFailed means prompts could not be listed or loaded.
	PromptFailed struct{ Err error }
	// DocumentsEmpty means the document directory holds no documents.
	DocumentsEmpty struct{}
	// DocumentChosen carries the extracted document the user picked.
	DocumentChosen struct{ Doc *model.DocumentAsset }
	// DocumentFailed means listing or extraction failed.
	DocumentFailed struct{ Err error }
	// CompletionDone carries the assistant text.
	CompletionDone struct{ Text string }
	// CompletionFailed carries the failure, usually a *completion.Failure.
	CompletionFailed struct{ Err error }
	// UserInput is one line typed while conversing.
	UserInput struct{ Text string }
	// MenuChosen is the raw menu input.
	MenuChosen struct{ Choice string }
	// PrePromptLoaded carries the pre-prompt template text.
	PrePromptLoaded struct{ Text string }
	// PrePromptFailed means the pre-prompt could not be read.
	PrePromptFailed struct{ Err error }
	// SelectionInvalid is a prompt or document number outside the listing.
	SelectionInvalid struct{ Input string }
	// InputClosed means no more input will arrive.
	InputClosed struct{}
	// SummarySaved carries the path a summary was written to.
	SummarySaved struct{ Path string }
	// SummaryFailed means the summary could not be written.
	SummaryFailed struct{ Err error }
)

func (Started) isEvent()          {}
func (PromptChosen) isEvent()     {}
func (PromptFailed) isEvent()     {}
func (DocumentsEmpty) isEvent()   {}
func (DocumentChosen) isEvent()   {}
func (DocumentFailed) isEvent()   {}
func (CompletionDone) isEvent()   {}
func (CompletionFailed) isEvent() {}
func (UserInput) isEvent()        {}
func (MenuChosen) isEvent()       {}
func (PrePromptLoaded) isEvent()  {}
func (PrePromptFailed) isEvent()  {}
func (SelectionInvalid) isEvent() {}
func (InputClosed) isEvent()      {}
func (SummarySaved) isEvent()     {}
func (SummaryFailed) isEvent()    {}

// Effect is a request from Session.Apply to the outside world. At most one
// effect per Apply result produces a follow-up event, and it is always last.
type Effect interface{ isEffect() }

type (
	// SelectPrompt lists prompts, asks the user for one and loads it.
	SelectPrompt struct{}
	// SelectDocument lists documents, asks the user for one and extracts it.
	SelectDocument struct{}
	// RequestCompletion sends exactly one system and one user message.
	RequestCompletion struct{ System, User string }
	// SaveSummary writes a summary for a document title.
	SaveSummary struct{ Title, Text string }
	// LoadPrePrompt reads the pre-prompt template.
	LoadPrePrompt struct{}
	// ReadInput reads one conversation line.
	ReadInput struct{ Prompt string }
	// ShowMenu displays the options and reads a choice after Prompt.
	ShowMenu struct {
		Options []Option
		Prompt  string
	}
	// ShowReply displays assistant text under a label.
	ShowReply struct{ Label, Text string }
	// Notify displays a message.
	Notify struct {
		Message string
		Error   bool
	}
	// RecordFailure displays a completion failure and writes it to the error log.
	RecordFailure struct{ Err error }
)

func (SelectPrompt) isEffect()      {}
func (SelectDocument) isEffect()    {}
func (RequestCompletion) isEffect() {}
func (SaveSummary) isEffect()       {}
func (LoadPrePrompt) isEffect()     {}
func (ReadInput) isEffect()         {}
func (ShowMenu) isEffect()          {}
func (ShowReply) isEffect()         {}
func (Notify) isEffect()            {}
func (RecordFailure) isEffect()     {}
