// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// PDFExtractor reads the embedded text layer of a PDF in-process. Scanned,
// image-only PDFs produce no text.
type PDFExtractor struct{}

// Extract returns the text of every page joined by newlines, NFC-normalized.
// The PDF reader panics on some malformed files; those panics come back as
// types.ErrExtraction.
func (PDFExtractor) Extract(ctx context.Context, path string) (text string, err error) {
	if err := CheckPDF(path); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %s: %v", types.ErrExtraction, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %w", types.ErrExtraction, path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("%w: reading page %d of %s: %w", types.ErrExtraction, i, path, err)
		}
		pages = append(pages, pageText)
	}

	text = norm.NFC.String(strings.Join(pages, "\n"))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s has no text layer", types.ErrExtraction, path)
	}
	return text, nil
}
