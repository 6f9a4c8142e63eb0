// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout turns loosely Markdown-formatted model output into typed
// layout blocks (headings, bullet items, paragraphs) for document rendering.
//
// Recognised markup is deliberately small: a line wrapped in ** is a heading,
// a line starting with • is a bullet, **bold** and *italic* spans are resolved
// inline. Anything else is paragraph text. Hyphen and asterisk bullets are not
// recognised and read as paragraph text.
package layout

import (
	"iter"
	"regexp"
	"strings"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// bulletGlyph is the only bullet marker recognised.
const bulletGlyph = "•"

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)
)

// Format returns the layout blocks of text in source order. The sequence is
// lazy and restartable: each range re-scans text from the start.
//
// A blank line ends the current paragraph. Bullet and heading lines end the
// current paragraph before they are emitted, so no buffered text is lost or
// reordered.
func Format(text string) iter.Seq[types.LayoutBlock] {
	return func(yield func(types.LayoutBlock) bool) {
		var buffer []string

		flush := func() bool {
			if len(buffer) == 0 {
				return true
			}
			block := types.LayoutBlock{
				Kind: types.BlockParagraph,
				Runs: ResolveEmphasis(strings.Join(buffer, " ")),
			}
			buffer = nil
			return yield(block)
		}

		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)

			switch {
			case trimmed == "":
				if !flush() {
					return
				}

			case strings.HasPrefix(trimmed, bulletGlyph):
				if !flush() {
					return
				}
				content := strings.TrimSpace(strings.TrimPrefix(trimmed, bulletGlyph))
				if !yield(types.LayoutBlock{Kind: types.BlockBullet, Runs: ResolveEmphasis(content)}) {
					return
				}

			case isHeading(trimmed):
				if !flush() {
					return
				}
				content := strings.TrimSpace(trimmed[2 : len(trimmed)-2])
				if !yield(types.LayoutBlock{Kind: types.BlockHeading, Runs: ResolveEmphasis(content)}) {
					return
				}

			default:
				buffer = append(buffer, trimmed)
			}
		}

		flush()
	}
}

// Collect gathers every block of text into a slice.
func Collect(text string) []types.LayoutBlock {
	var blocks []types.LayoutBlock
	for b := range Format(text) {
		blocks = append(blocks, b)
	}
	return blocks
}

// isHeading reports whether a trimmed line is wrapped in ** markers with
// non-blank content and no other ** inside. A bare "**" or "****" is not a
// heading, and neither is "**a** and **b**".
func isHeading(line string) bool {
	if len(line) <= 4 || !strings.HasPrefix(line, "**") || !strings.HasSuffix(line, "**") {
		return false
	}
	inner := line[2 : len(line)-2]
	return strings.TrimSpace(inner) != "" && !strings.Contains(inner, "**")
}

// ResolveEmphasis splits s into styled runs. Non-overlapping **bold** spans
// are resolved first, then *italic* spans within the remaining plain text.
// Spans do not nest and unmatched markers stay literal.
func ResolveEmphasis(s string) []types.Run {
	var runs []types.Run

	appendRun := func(r types.Run) {
		if r.Text == "" {
			return
		}
		if n := len(runs); n > 0 && runs[n-1].Bold == r.Bold && runs[n-1].Italic == r.Italic {
			runs[n-1].Text += r.Text
			return
		}
		runs = append(runs, r)
	}

	plain := func(text string) {
		last := 0
		for _, m := range italicPattern.FindAllStringSubmatchIndex(text, -1) {
			appendRun(types.Run{Text: text[last:m[0]]})
			appendRun(types.Run{Text: text[m[2]:m[3]], Italic: true})
			last = m[1]
		}
		appendRun(types.Run{Text: text[last:]})
	}

	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(s, -1) {
		plain(s[last:m[0]])
		appendRun(types.Run{Text: s[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	plain(s[last:])

	return runs
}

// StripEmphasis returns s with emphasis markers removed.
func StripEmphasis(s string) string {
	return types.RunsText(ResolveEmphasis(s))
}

// PlainText renders blocks as unstyled text, one block per line.
func PlainText(blocks iter.Seq[types.LayoutBlock]) string {
	var lines []string
	for b := range blocks {
		lines = append(lines, b.Text())
	}
	return strings.Join(lines, "\n")
}
