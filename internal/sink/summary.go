package sink

import (
	"fmt"
	"os"
	"path/filepath"
)

// Summaries writes summary_<title>.txt files to an output directory.
type Summaries struct {
	dir string
}

// NewSummaries creates a Summaries sink rooted at dir.
func NewSummaries(dir string) *Summaries {
	return &Summaries{dir: dir}
}

// Write stores text for the document title, replacing any earlier summary
// of the same title, and returns the file path.
func (s *Summaries) Write(title, text string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.dir, "summary_"+filepath.Base(title)+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return path, nil
}
