package model

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"digest prefix", "9f86d081884c7d659a2feaa0c55ad015", 12, "9f86d0818..."},
		{"short body kept", `{"error":"busy"}`, 200, `{"error":"busy"}`},
		{"body at limit", "abcde", 5, "abcde"},
		{"body preview", `{"error":{"code":"429"}}`, 12, `{"error":...`},
		{"tiny limit cuts without ellipsis", "Response", 2, "Re"},
		{"limit three", "Response", 3, "Res"},
		{"empty body", "", 200, ""},
		{"multibyte text", "論文の要約テキスト", 6, "論文の..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.maxLen); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestModeConstants(t *testing.T) {
	modes := []Mode{ModePlain, ModePdfSummarize, ModePdfChat}
	expected := []string{"plain", "pdf_summarize", "pdf_chat"}
	for i, m := range modes {
		if string(m) != expected[i] {
			t.Fatalf("expected %q, got %q", expected[i], m)
		}
	}
}

func TestNewDocumentAssetTitle(t *testing.T) {
	doc := NewDocumentAsset("paper.v2.pdf", "text")
	if doc.Title != "paper.v2" {
		t.Fatalf("expected title 'paper.v2', got %q", doc.Title)
	}
	if doc.Name != "paper.v2.pdf" || doc.Text != "text" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestNewDocumentAssetNoExtension(t *testing.T) {
	doc := NewDocumentAsset("notes", "")
	if doc.Title != "notes" {
		t.Fatalf("expected title 'notes', got %q", doc.Title)
	}
}
