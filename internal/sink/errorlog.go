// Package sink writes durable artifacts: error records and summaries.
package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02_15-04-05"

// ErrNoLogDir is returned by List when the error-log directory does not exist.
var ErrNoLogDir = errors.New("no log folder")

// ErrorLog writes one file per failure into a directory. Files are never
// appended to or rotated.
type ErrorLog struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewErrorLog creates an ErrorLog rooted at dir. The directory is created on
// the first Record.
func NewErrorLog(dir string, logger *zap.Logger) *ErrorLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLog{dir: dir, now: time.Now, logger: logger}
}

// Record writes message (and the raw response body when non-empty) to a new
// error_<timestamp>.log file and returns a notice for the user. It never
// fails: write problems are reported in the notice and the app log.
func (l *ErrorLog) Record(message, rawBody string) string {
	ts := l.now().Format(timestampLayout)

	var b strings.Builder
	fmt.Fprintf(&b, "Error occurred at %s\n", ts)
	fmt.Fprintf(&b, "Error message: %s\n", message)
	if rawBody != "" {
		fmt.Fprintf(&b, "Response content:\n%s\n", rawBody)
	}

	path, err := l.create(ts, b.String())
	if err != nil {
		l.logger.Error("writing error record failed",
			zap.String("dir", l.dir), zap.String("message", message), zap.Error(err))
		return fmt.Sprintf("Could not write error log: %v", err)
	}
	l.logger.Info("error recorded", zap.String("path", path), zap.String("message", message))
	return fmt.Sprintf("Error details logged to %s", path)
}

// create writes content to a fresh file named after ts, adding a numeric
// suffix when a record with the same second already exists.
func (l *ErrorLog) create(ts, content string) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}
	for n := 0; n < 1000; n++ {
		name := "error_" + ts + ".log"
		if n > 0 {
			name = fmt.Sprintf("error_%s_%d.log", ts, n)
		}
		path := filepath.Join(l.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		_, werr := f.WriteString(content)
		cerr := f.Close()
		if werr != nil {
			return "", werr
		}
		return path, cerr
	}
	return "", fmt.Errorf("too many error records for %s", ts)
}

// Record is a stored error file.
type Record struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// List returns the .log files in the directory in ascending name order,
// which is chronological for generated names.
func (l *ErrorLog) List() ([]Record, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", l.dir, ErrNoLogDir)
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, Record{
			Name:    e.Name(),
			Path:    filepath.Join(l.dir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Read returns the content of a record, limited to maxChars runes when
// maxChars > 0.
func (l *ErrorLog) Read(rec Record, maxChars int) (string, error) {
	data, err := os.ReadFile(rec.Path)
	if err != nil {
		return "", err
	}
	r := []rune(string(data))
	if maxChars > 0 && len(r) > maxChars {
		r = r[:maxChars]
	}
	return string(r), nil
}
