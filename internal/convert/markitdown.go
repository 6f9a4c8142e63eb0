// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/statement-summarizer/internal/container"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor extracts text by piping PDFs through the markitdown
// container image. It suits PDFs whose text layer the in-process reader
// garbles (multi-column layouts, tables).
type MarkitdownExtractor struct {
	runtime container.Runtime
}

// NewMarkitdownExtractor verifies that the markitdown image exists locally
// in rt before returning.
func NewMarkitdownExtractor(ctx context.Context, rt container.Runtime) (*MarkitdownExtractor, error) {
	if err := rt.ImageExists(ctx, imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt}, nil
}

// Extract pipes the PDF at path through the container and returns its output.
func (m *MarkitdownExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := CheckPDF(path); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %w", types.ErrExtraction, path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrExtraction, err)
	}
	if len(bytes.TrimSpace(out.Bytes())) == 0 {
		return "", fmt.Errorf("%w: markitdown produced empty output for %s", types.ErrExtraction, path)
	}
	return out.String(), nil
}
