// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Run is a span of text with uniform inline styling.
type Run struct {
	Text   string `json:"text" yaml:"text"`
	Bold   bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
}

// BlockKind classifies a LayoutBlock.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockParagraph BlockKind = "paragraph"
)

// LayoutBlock is one classified unit of summary text ready for rendering.
// Emphasis markers have already been resolved into Runs.
type LayoutBlock struct {
	Kind BlockKind `json:"kind" yaml:"kind"`
	Runs []Run     `json:"runs" yaml:"runs"`
}

// Text returns the block's text with styling dropped.
func (b LayoutBlock) Text() string {
	return RunsText(b.Runs)
}

// RunsText concatenates the text of runs.
func RunsText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
