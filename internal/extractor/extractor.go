// Package extractor turns statement PDFs into raw text. Digital PDFs are
// read directly; scanned PDFs fall back to Tesseract OCR over the page
// images.
package extractor

import (
	"context"
	"strings"
)

// TextExtractor produces the full raw text of a statement document.
type TextExtractor interface {
	Extract(ctx context.Context, pdfData []byte) (string, error)
}

// Auto extracts embedded PDF text first and reroutes through OCR when the
// result looks like a scanned document (too little text).
type Auto struct {
	Text         TextExtractor
	OCR          TextExtractor
	MinTextChars int
}

// NewAuto builds the default extractor chain. tessdataPrefix may be empty
// to use the system default.
func NewAuto(tessdataPrefix string, minTextChars int) *Auto {
	return &Auto{
		Text:         &PDFText{},
		OCR:          &Tesseract{TessdataPrefix: tessdataPrefix},
		MinTextChars: minTextChars,
	}
}

func (a *Auto) Extract(ctx context.Context, pdfData []byte) (string, error) {
	text, err := a.Text.Extract(ctx, pdfData)
	if err == nil && len(strings.TrimSpace(text)) >= a.MinTextChars {
		return text, nil
	}
	// Little or no embedded text: treat as scanned.
	return a.OCR.Extract(ctx, pdfData)
}
