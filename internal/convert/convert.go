// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts plain text from witness statements with pluggable
// backends: an in-process PDF text-layer reader and the markitdown container.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/statement-summarizer/internal/container"
	"github.com/pdiddy/statement-summarizer/internal/docx"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// Extractor returns the plain text of a PDF, all pages in page order.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// CheckPDF returns ErrUnsupportedFileType unless path has a .pdf extension.
func CheckPDF(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%w: %s (expected .pdf)", types.ErrUnsupportedFileType, filepath.Base(path))
	}
	return nil
}

// New returns the extractor selected by kind. The markitdown backend needs a
// working container runtime with the markitdown image present.
func New(ctx context.Context, kind types.ExtractorKind) (Extractor, error) {
	switch kind {
	case "", types.ExtractorPDF:
		return PDFExtractor{}, nil
	case types.ExtractorMarkitdown:
		rt, err := container.Detect(ctx)
		if err != nil {
			return nil, err
		}
		return NewMarkitdownExtractor(ctx, rt)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", kind)
	}
}

// ReadDocument returns the text of a PDF (through ex) or a Word document.
// Other extensions yield ErrUnsupportedFileType.
func ReadDocument(ctx context.Context, ex Extractor, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ex.Extract(ctx, path)
	case ".docx":
		text, err := docx.ReadText(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", types.ErrExtraction, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFileType, filepath.Base(path))
	}
}
