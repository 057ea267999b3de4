package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, pdfData []byte) (string, error) {
	return f.text, f.err
}

func TestAutoUsesEmbeddedText(t *testing.T) {
	auto := &Auto{
		Text:         &fakeExtractor{text: strings.Repeat("x", 200)},
		OCR:          &fakeExtractor{err: errors.New("OCR should not run")},
		MinTextChars: 100,
	}

	got, err := auto.Extract(context.Background(), []byte("pdf"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got) != 200 {
		t.Errorf("expected embedded text, got %d chars", len(got))
	}
}

func TestAutoFallsBackToOCR(t *testing.T) {
	auto := &Auto{
		Text:         &fakeExtractor{text: "   \n  "},
		OCR:          &fakeExtractor{text: "ocr text"},
		MinTextChars: 100,
	}

	got, err := auto.Extract(context.Background(), []byte("pdf"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "ocr text" {
		t.Errorf("expected OCR text, got %q", got)
	}
}

func TestSortByPageOrdersNumerically(t *testing.T) {
	paths := []string{
		"/tmp/pages/statement_10_Im0.png",
		"/tmp/pages/statement_2_Im0.png",
		"/tmp/pages/statement_1_Im1.png",
		"/tmp/pages/statement_1_Im0.png",
	}
	sortByPage(paths)

	want := []string{
		"/tmp/pages/statement_1_Im0.png",
		"/tmp/pages/statement_1_Im1.png",
		"/tmp/pages/statement_2_Im0.png",
		"/tmp/pages/statement_10_Im0.png",
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestAutoFallsBackOnTextError(t *testing.T) {
	auto := &Auto{
		Text:         &fakeExtractor{err: errors.New("broken pdf")},
		OCR:          &fakeExtractor{text: "ocr text"},
		MinTextChars: 100,
	}

	got, err := auto.Extract(context.Background(), []byte("pdf"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "ocr text" {
		t.Errorf("expected OCR text, got %q", got)
	}
}
