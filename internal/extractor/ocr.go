package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Tesseract OCRs a scanned statement: pdfcpu pulls the page images out of
// the PDF, gosseract reads each one.
type Tesseract struct {
	// TessdataPrefix overrides the Tesseract language data location when
	// non-empty.
	TessdataPrefix string
}

func (t *Tesseract) Extract(ctx context.Context, pdfData []byte) (string, error) {
	imagePaths, cleanup, err := extractPageImages(pdfData)
	if err != nil {
		return "", err
	}
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return "", fmt.Errorf("extractor: set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("extractor: set OCR language: %w", err)
	}

	var b strings.Builder
	for _, path := range imagePaths {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := client.SetImage(path); err != nil {
			return "", fmt.Errorf("extractor: set OCR image %s: %w", filepath.Base(path), err)
		}
		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("extractor: OCR %s: %w", filepath.Base(path), err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// extractPageImages writes the PDF's page images into a temp directory and
// returns their paths in page order.
func extractPageImages(pdfData []byte) ([]string, func(), error) {
	tempDir, err := os.MkdirTemp("", "spendsense-ocr")
	if err != nil {
		return nil, nil, fmt.Errorf("extractor: create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	tempFile, err := os.CreateTemp(tempDir, "statement-*.pdf")
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("extractor: create temp pdf: %w", err)
	}
	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		cleanup()
		return nil, nil, fmt.Errorf("extractor: write temp pdf: %w", err)
	}
	tempFile.Close()

	imageDir := filepath.Join(tempDir, "pages")
	if err := os.Mkdir(imageDir, 0o755); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("extractor: create image dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), imageDir, nil, conf); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("extractor: extract page images: %w", err)
	}

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("extractor: read image dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(imageDir, entry.Name()))
	}
	sortByPage(paths)

	return paths, cleanup, nil
}

// imagePage matches the page number in pdfcpu's extracted image names
// (<pdf>_<page>_<resource>.<ext>).
var imagePage = regexp.MustCompile(`_(\d+)_`)

// sortByPage orders image paths by their numeric page component so page 10
// never precedes page 2. Names without a page number sort first, lexically.
func sortByPage(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		pi, pj := pageNumber(paths[i]), pageNumber(paths[j])
		if pi != pj {
			return pi < pj
		}
		return paths[i] < paths[j]
	})
}

func pageNumber(path string) int {
	m := imagePage.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
