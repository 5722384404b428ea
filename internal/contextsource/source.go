// Package contextsource loads system prompts and document text from disk.
package contextsource

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mamoruimade/basicChatFeature/model"
)

// Reserved prompt file names.
const (
	SummarizerPrompt = "paper_summarizer.txt"
	PrePrompt        = "pre_paper_prompt.txt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrIO         = errors.New("i/o error")
	ErrExtraction = errors.New("extraction failed")
)

// IsSummarizer reports whether name is the reserved summarizer template.
func IsSummarizer(name string) bool {
	return strings.EqualFold(name, SummarizerPrompt)
}

// Cache stores extracted text keyed by content digest. store/sqlite.Store
// satisfies it.
type Cache interface {
	Get(digest string) (string, bool, error)
	Put(digest, name, text string, pages int) error
}

// Source reads prompt assets from one directory and documents from another.
type Source struct {
	promptDir string
	paperDir  string
	extractor Extractor
	cache     Cache
	logger    *zap.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithExtractor replaces the PDF extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Source) { s.extractor = e }
}

// WithCache enables the extraction cache.
func WithCache(c Cache) Option {
	return func(s *Source) { s.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) { s.logger = l }
}

// New creates a Source. It does not touch the filesystem.
func New(promptDir, paperDir string, opts ...Option) *Source {
	s := &Source{
		promptDir: promptDir,
		paperDir:  paperDir,
		extractor: PDFExtractor{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckPromptDir verifies the prompt directory exists and is readable.
func (s *Source) CheckPromptDir() error {
	if _, err := os.ReadDir(s.promptDir); err != nil {
		return classify(fmt.Sprintf("prompt directory %s", s.promptDir), err)
	}
	return nil
}

// ListPrompts returns the .txt prompt files in ascending order, excluding
// the reserved pre-prompt.
func (s *Source) ListPrompts() ([]string, error) {
	names, err := listByExt(s.promptDir, ".txt")
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if !strings.EqualFold(n, PrePrompt) {
			out = append(out, n)
		}
	}
	return out, nil
}

// LoadPrompt reads a prompt file.
func (s *Source) LoadPrompt(name string) (model.PromptAsset, error) {
	content, err := readAsset(s.promptDir, name)
	if err != nil {
		return model.PromptAsset{}, err
	}
	return model.PromptAsset{Name: name, Content: content}, nil
}

// LoadPrePrompt reads the reserved pre-prompt used for document chat.
func (s *Source) LoadPrePrompt() (string, error) {
	return readAsset(s.promptDir, PrePrompt)
}

// ListDocuments returns the .pdf files in ascending order. An empty result
// with a nil error means the directory holds no documents.
func (s *Source) ListDocuments() ([]string, error) {
	return listByExt(s.paperDir, ".pdf")
}

// ExtractDocument extracts the text of a document. Each call returns a new
// DocumentAsset.
func (s *Source) ExtractDocument(name string) (*model.DocumentAsset, error) {
	path, err := assetPath(s.paperDir, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(name, err)
	}
	digest := digestOf(data)

	if s.cache != nil {
		text, ok, err := s.cache.Get(digest)
		if err != nil {
			s.logger.Warn("extraction cache read failed", zap.String("document", name), zap.Error(err))
		} else if ok {
			s.logger.Debug("extraction cache hit", zap.String("document", name))
			return model.NewDocumentAsset(name, text), nil
		}
	}

	text, pages, err := s.extractor.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrExtraction, err)
	}
	s.logger.Info("document extracted",
		zap.String("document", name), zap.Int("pages", pages), zap.Int("chars", len(text)))

	if s.cache != nil {
		if err := s.cache.Put(digest, name, text, pages); err != nil {
			s.logger.Warn("extraction cache write failed", zap.String("document", name), zap.Error(err))
		}
	}
	return model.NewDocumentAsset(name, text), nil
}

func listByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %v", dir, ErrIO, err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func readAsset(dir, name string) (string, error) {
	path, err := assetPath(dir, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify(name, err)
	}
	return string(data), nil
}

func assetPath(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return filepath.Join(dir, name), nil
}

func classify(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", name, ErrIO, err)
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
