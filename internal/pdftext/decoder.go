// Package pdftext decodes PDF documents into page-ordered plain text.
// It is the engine's only collaborator that understands the PDF format;
// everything downstream works on text.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrDecode marks documents that could not be converted to text at all
// (non-PDF or corrupt input). Callers surface it as an all-absent
// result, never as a crash.
var ErrDecode = errors.New("pdf decode failed")

var pdfMagic = []byte("%PDF-")

// LooksLikePDF reports whether the byte sequence starts like a PDF file
func LooksLikePDF(head []byte) bool {
	return bytes.HasPrefix(head, pdfMagic)
}

// DecodeFile extracts per-page text from a PDF on disk
func DecodeFile(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDecode, path, err)
	}
	defer func() { _ = f.Close() }()

	return pageTexts(r)
}

// Decode extracts per-page text from an in-memory PDF
func Decode(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return pageTexts(r)
}

// pageTexts walks the page tree in order. Pages that fail individually
// are skipped rather than failing the document; only a document with no
// extractable text at all is a decode failure.
func pageTexts(r *pdf.Reader) ([]string, error) {
	total := r.NumPage()
	pages := make([]string, 0, total)

	extracted := false
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
		if len(text) > 0 {
			extracted = true
		}
	}

	if !extracted {
		return nil, fmt.Errorf("%w: no extractable text", ErrDecode)
	}
	return pages, nil
}
