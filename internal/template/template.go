// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template splices summary lines into a paragraph-structured report
// template under a named section heading.
//
// The Document type is format-neutral: a writer (see package docx) builds it
// from a file, lets Insert mutate it, and serializes it back. Paragraph
// properties that only the writer understands travel in Paragraph.Props.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/statement-summarizer/internal/layout"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// Paragraph is one paragraph node of a template.
type Paragraph struct {
	// Runs holds the paragraph content.
	Runs []types.Run

	// Props is opaque paragraph formatting owned by the document writer.
	Props []byte

	// Key is the index of the originating paragraph in the source document,
	// or -1 for a paragraph created by Insert.
	Key int

	// Modified is set when Runs no longer match the source document.
	Modified bool
}

// NewParagraph returns an inserted paragraph with the given content.
func NewParagraph(runs []types.Run, props []byte) *Paragraph {
	return &Paragraph{Runs: runs, Props: props, Key: -1, Modified: true}
}

// Text returns the paragraph's plain text.
func (p *Paragraph) Text() string {
	return types.RunsText(p.Runs)
}

// SetRuns replaces the paragraph content.
func (p *Paragraph) SetRuns(runs []types.Run) {
	p.Runs = runs
	p.Modified = true
}

// Document is an ordered sequence of paragraphs.
type Document struct {
	Paragraphs []*Paragraph
}

// InsertAfter inserts p immediately after position i. Use i = -1 to insert
// at the front.
func (d *Document) InsertAfter(i int, p *Paragraph) {
	d.Paragraphs = append(d.Paragraphs, nil)
	copy(d.Paragraphs[i+2:], d.Paragraphs[i+1:])
	d.Paragraphs[i+1] = p
}

// Texts returns the plain text of every paragraph.
func (d *Document) Texts() []string {
	out := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		out[i] = p.Text()
	}
	return out
}

// datePrefix matches a leading date such as "25 March 2025".
var datePrefix = regexp.MustCompile(`^(\d{1,2} [A-Za-z]+ \d{4})(.*)$`)

var upper = cases.Upper(language.Und)

// normalize prepares paragraph text for anchor comparison.
func normalize(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// FindSection returns the index of the first paragraph whose trimmed,
// upper-cased text equals anchor, or -1.
func (d *Document) FindSection(anchor string) int {
	want := normalize(anchor)
	for i, p := range d.Paragraphs {
		if normalize(p.Text()) == want {
			return i
		}
	}
	return -1
}

// Insert replaces the placeholder paragraph under the anchor heading with
// the non-blank lines of summary. The first line overwrites the first
// non-blank paragraph after the heading; each further line becomes a new
// paragraph placed after the previous one. An empty anchor means
// types.DefaultAnchor.
//
// The document is left unchanged when an error is returned.
func Insert(doc *Document, summary, anchor string) error {
	if anchor == "" {
		anchor = types.DefaultAnchor
	}

	heading := doc.FindSection(anchor)
	if heading < 0 {
		return fmt.Errorf("%w: no %q heading in template", types.ErrSectionNotFound, anchor)
	}

	target := -1
	for i := heading + 1; i < len(doc.Paragraphs); i++ {
		if strings.TrimSpace(doc.Paragraphs[i].Text()) != "" {
			target = i
			break
		}
	}
	if target < 0 {
		return fmt.Errorf("%w: %q", types.ErrNoInsertionPoint, anchor)
	}

	lines := SummaryLines(summary)
	if len(lines) == 0 {
		return types.ErrEmptySummary
	}

	first := doc.Paragraphs[target]
	first.SetRuns(LineRuns(lines[0]))

	at := target
	for _, line := range lines[1:] {
		doc.InsertAfter(at, NewParagraph(LineRuns(line), first.Props))
		at++
	}
	return nil
}

// SummaryLines splits summary into trimmed, non-blank lines.
func SummaryLines(summary string) []string {
	var lines []string
	for _, line := range strings.Split(summary, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// LineRuns styles one summary line. A leading date ("25 March 2025") becomes
// a bold run followed by a plain run holding the rest of the line. Other lines
// have inline emphasis resolved; an unmarked line is a single plain run.
func LineRuns(line string) []types.Run {
	if m := datePrefix.FindStringSubmatch(line); m != nil {
		runs := []types.Run{{Text: m[1], Bold: true}}
		if rest := strings.TrimSpace(m[2]); rest != "" {
			runs = append(runs, types.Run{Text: " " + rest})
		}
		return runs
	}
	runs := layout.ResolveEmphasis(line)
	if len(runs) == 0 {
		return []types.Run{{Text: line}}
	}
	return runs
}
