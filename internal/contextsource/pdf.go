package contextsource

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	// Extract returns the concatenated page text and the page count.
	Extract(data []byte) (text string, pages int, err error)
}

// PDFExtractor extracts text with github.com/ledongthuc/pdf.
//
// Pages without extractable text (scanned images, broken content streams)
// contribute nothing; only a document that cannot be opened is an error.
type PDFExtractor struct{}

func (PDFExtractor) Extract(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("opening pdf: %w", err)
	}

	pages = r.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		b.WriteString(pageText(r.Page(i)))
	}
	return b.String(), pages, nil
}

func pageText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
