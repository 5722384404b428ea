// Package model defines the core domain types shared across all basicchat packages.
// It has zero dependencies on other basicchat packages.
package model

import (
	"path/filepath"
	"strings"
)

// Mode selects how the system message is built and which menu options apply.
type Mode string

const (
	// ModePlain chats with a system prompt loaded verbatim from a prompt file.
	ModePlain Mode = "plain"
	// ModePdfSummarize sends extracted document text to the summarizer prompt.
	ModePdfSummarize Mode = "pdf_summarize"
	// ModePdfChat chats with a system message grounded in a document.
	ModePdfChat Mode = "pdf_chat"
)

// Role tags a single message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// PromptAsset is a loaded system prompt file.
type PromptAsset struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DocumentAsset is the plain text extracted from a source document.
type DocumentAsset struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Text  string `json:"-"`
}

// NewDocumentAsset builds a DocumentAsset, deriving the title from the file name.
func NewDocumentAsset(name, text string) *DocumentAsset {
	return &DocumentAsset{
		Name:  name,
		Title: strings.TrimSuffix(name, filepath.Ext(name)),
		Text:  text,
	}
}

// Truncate shortens a string to maxLen runes, adding "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		r := []rune(s)
		if len(r) <= maxLen {
			return s
		}
		return string(r[:maxLen])
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
