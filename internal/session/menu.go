package session

import (
	"strconv"
	"strings"

	"github.com/mamoruimade/basicChatFeature/model"
)

// Action is what a menu option does.
type Action string

const (
	ActionChangePrompt Action = "change_prompt"
	ActionReusePrompt  Action = "reuse_prompt"
	ActionChatDocument Action = "chat_document"
	ActionExit         Action = "exit"
)

// Option is one numbered entry of the idle menu.
type Option struct {
	Number int
	Label  string
	Action Action
}

// menuTable lists every possible option in display order. Options are
// numbered consecutively among those whose predicate holds.
var menuTable = []struct {
	action Action
	label  string
	when   func(*Session) bool
}{
	{ActionChangePrompt, "Change system prompt file", always},
	{ActionReusePrompt, "Use the same system prompt for another prompt.", notSummarizing},
	{ActionReusePrompt, "Summarize another PDF with the same system prompt.", summarizing},
	{ActionChatDocument, "Chat with PDF text", summarizingWithDocument},
	{ActionExit, "Exit conversation", always},
}

func always(*Session) bool           { return true }
func summarizing(s *Session) bool    { return s.Mode == model.ModePdfSummarize }
func notSummarizing(s *Session) bool { return s.Mode != model.ModePdfSummarize }
func summarizingWithDocument(s *Session) bool {
	return s.Mode == model.ModePdfSummarize && s.Document != nil
}

// MenuOptions returns the options valid for the current mode.
func (s *Session) MenuOptions() []Option {
	var opts []Option
	for _, row := range menuTable {
		if !row.when(s) {
			continue
		}
		opts = append(opts, Option{Number: len(opts) + 1, Label: row.label, Action: row.action})
	}
	return opts
}

// Labels returns the option labels in display order.
func Labels(opts []Option) []string {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	return labels
}

// lookup matches raw input against option numbers exactly, as typed digits.
func lookup(opts []Option, raw string) (Option, bool) {
	raw = strings.TrimSpace(raw)
	for _, o := range opts {
		if raw == strconv.Itoa(o.Number) {
			return o, true
		}
	}
	return Option{}, false
}
