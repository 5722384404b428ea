package contextsource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamoruimade/basicChatFeature/store/sqlite"
)

type fakeExtractor struct {
	text  string
	pages int
	err   error
	calls int
}

func (f *fakeExtractor) Extract(data []byte) (string, int, error) {
	f.calls++
	if f.err != nil {
		return "", 0, f.err
	}
	return f.text + string(data), f.pages, nil
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestListPromptsSortedAndFiltered(t *testing.T) {
	prompts := t.TempDir()
	writeFiles(t, prompts, map[string]string{
		"b.txt":                "b",
		"a.TXT":                "a",
		"paper_summarizer.txt": "summarize",
		"Pre_Paper_Prompt.txt": "pre",
		"notes.md":             "ignored",
	})
	require.NoError(t, os.Mkdir(filepath.Join(prompts, "dir.txt"), 0o755))

	src := New(prompts, t.TempDir())
	names, err := src.ListPrompts()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.TXT", "b.txt", "paper_summarizer.txt"}, names)
}

func TestListPromptsMissingDir(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	_, err := src.ListPrompts()
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, src.CheckPromptDir(), ErrNotFound)
}

func TestLoadPrompt(t *testing.T) {
	prompts := t.TempDir()
	writeFiles(t, prompts, map[string]string{"a.txt": "You are helpful."})
	src := New(prompts, t.TempDir())

	asset, err := src.LoadPrompt("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", asset.Name)
	assert.Equal(t, "You are helpful.", asset.Content)

	again, err := src.LoadPrompt("a.txt")
	require.NoError(t, err)
	assert.Equal(t, asset, again)
}

func TestLoadPromptNotFound(t *testing.T) {
	src := New(t.TempDir(), t.TempDir())

	for _, name := range []string{"missing.txt", "../etc/passwd", "", ".."} {
		_, err := src.LoadPrompt(name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestLoadPrePrompt(t *testing.T) {
	prompts := t.TempDir()
	src := New(prompts, t.TempDir())

	_, err := src.LoadPrePrompt()
	assert.ErrorIs(t, err, ErrNotFound)

	writeFiles(t, prompts, map[string]string{PrePrompt: "Answer from the paper:"})
	pre, err := src.LoadPrePrompt()
	require.NoError(t, err)
	assert.Equal(t, "Answer from the paper:", pre)
}

func TestListDocumentsEmptyIsNotError(t *testing.T) {
	src := New(t.TempDir(), t.TempDir())
	names, err := src.ListDocuments()
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestListDocumentsMissingDirIsIOError(t *testing.T) {
	src := New(t.TempDir(), filepath.Join(t.TempDir(), "missing"))
	_, err := src.ListDocuments()
	assert.ErrorIs(t, err, ErrIO)
}

func TestListDocumentsCaseInsensitive(t *testing.T) {
	papers := t.TempDir()
	writeFiles(t, papers, map[string]string{"z.pdf": "", "B.PDF": "", "a.Pdf": "", "x.txt": ""})

	src := New(t.TempDir(), papers)
	names, err := src.ListDocuments()
	require.NoError(t, err)
	assert.Equal(t, []string{"B.PDF", "a.Pdf", "z.pdf"}, names)
}

func TestExtractDocument(t *testing.T) {
	papers := t.TempDir()
	writeFiles(t, papers, map[string]string{"paper.pdf": "body"})
	ext := &fakeExtractor{text: "text:", pages: 2}

	src := New(t.TempDir(), papers, WithExtractor(ext))
	doc, err := src.ExtractDocument("paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, "paper", doc.Title)
	assert.Equal(t, "text:body", doc.Text)

	again, err := src.ExtractDocument("paper.pdf")
	require.NoError(t, err)
	assert.NotSame(t, doc, again)
	assert.Equal(t, 2, ext.calls)
}

func TestExtractDocumentErrors(t *testing.T) {
	papers := t.TempDir()
	writeFiles(t, papers, map[string]string{"bad.pdf": "garbage"})

	src := New(t.TempDir(), papers, WithExtractor(&fakeExtractor{err: errors.New("no header")}))
	_, err := src.ExtractDocument("bad.pdf")
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = src.ExtractDocument("missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractDocumentUsesCache(t *testing.T) {
	papers := t.TempDir()
	writeFiles(t, papers, map[string]string{"paper.pdf": "body"})

	cache, err := sqlite.New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	ext := &fakeExtractor{text: "text:", pages: 1}
	src := New(t.TempDir(), papers, WithExtractor(ext), WithCache(cache))

	first, err := src.ExtractDocument("paper.pdf")
	require.NoError(t, err)
	second, err := src.ExtractDocument("paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, ext.calls)

	writeFiles(t, papers, map[string]string{"paper.pdf": "edited"})
	third, err := src.ExtractDocument("paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, "text:edited", third.Text)
	assert.Equal(t, 2, ext.calls)
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	_, _, err := PDFExtractor{}.Extract([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestIsSummarizer(t *testing.T) {
	assert.True(t, IsSummarizer("paper_summarizer.txt"))
	assert.True(t, IsSummarizer("Paper_Summarizer.TXT"))
	assert.False(t, IsSummarizer("a.txt"))
}
