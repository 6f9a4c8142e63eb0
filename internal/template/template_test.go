// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// docFromTexts builds a Document with one plain run per paragraph.
func docFromTexts(texts ...string) *Document {
	doc := &Document{}
	for i, s := range texts {
		var runs []types.Run
		if s != "" {
			runs = []types.Run{{Text: s}}
		}
		doc.Paragraphs = append(doc.Paragraphs, &Paragraph{Runs: runs, Key: i, Props: []byte("props-" + s)})
	}
	return doc
}

func TestInsert_ThreeLineSummary(t *testing.T) {
	doc := docFromTexts("REPORT", "Circumstances", "", "[placeholder]", "MEDICAL HISTORY")

	err := Insert(doc, "First event.\nSecond event.\n\nThird event.\n", "CIRCUMSTANCES")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"REPORT", "Circumstances", "", "First event.", "Second event.", "Third event.", "MEDICAL HISTORY",
	}, doc.Texts())

	target := doc.Paragraphs[3]
	assert.Equal(t, 3, target.Key, "first line overwrites the placeholder paragraph")
	assert.True(t, target.Modified)
	for _, p := range doc.Paragraphs[4:6] {
		assert.Equal(t, -1, p.Key)
		assert.Equal(t, []byte("props-[placeholder]"), p.Props, "inserted paragraphs share the placeholder formatting")
	}
	assert.False(t, doc.Paragraphs[6].Modified)
}

func TestInsert_AnchorMatchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	doc := docFromTexts("  circumstances  ", "old")

	require.NoError(t, Insert(doc, "new", ""))
	assert.Equal(t, []string{"  circumstances  ", "new"}, doc.Texts())
}

func TestInsert_CustomAnchor(t *testing.T) {
	doc := docFromTexts("CIRCUMSTANCES", "keep", "Post-Incident Condition", "old")

	require.NoError(t, Insert(doc, "replaced", "POST-INCIDENT CONDITION"))
	assert.Equal(t, []string{"CIRCUMSTANCES", "keep", "Post-Incident Condition", "replaced"}, doc.Texts())
}

func TestInsert_SectionNotFound(t *testing.T) {
	doc := docFromTexts("INTRODUCTION", "text")

	err := Insert(doc, "line", "CIRCUMSTANCES")
	require.ErrorIs(t, err, types.ErrSectionNotFound)
	assert.Equal(t, []string{"INTRODUCTION", "text"}, doc.Texts())
	assert.False(t, doc.Paragraphs[1].Modified)
}

func TestInsert_NoInsertionPoint(t *testing.T) {
	doc := docFromTexts("intro", "CIRCUMSTANCES", "", "   ")

	err := Insert(doc, "line", "")
	require.ErrorIs(t, err, types.ErrNoInsertionPoint)
	assert.Len(t, doc.Paragraphs, 4)
}

func TestInsert_EmptySummary(t *testing.T) {
	doc := docFromTexts("CIRCUMSTANCES", "placeholder")

	err := Insert(doc, "\n  \n", "")
	require.ErrorIs(t, err, types.ErrEmptySummary)
	assert.Equal(t, "placeholder", doc.Paragraphs[1].Text())
	assert.False(t, doc.Paragraphs[1].Modified)
}

func TestInsert_DateLinesAreBold(t *testing.T) {
	doc := docFromTexts("CIRCUMSTANCES", "placeholder")

	require.NoError(t, Insert(doc, "25 March 2025 — arrived at work\nShe slipped.", ""))

	require.Len(t, doc.Paragraphs, 3)
	assert.Equal(t, []types.Run{
		{Text: "25 March 2025", Bold: true},
		{Text: " — arrived at work"},
	}, doc.Paragraphs[1].Runs)
	assert.Equal(t, []types.Run{{Text: "She slipped."}}, doc.Paragraphs[2].Runs)
}

func TestLineRuns(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []types.Run
	}{
		{
			name: "date prefix",
			line: "25 March 2025 — arrived at work",
			want: []types.Run{{Text: "25 March 2025", Bold: true}, {Text: " — arrived at work"}},
		},
		{
			name: "single digit day",
			line: "3 April 2024 the claimant returned",
			want: []types.Run{{Text: "3 April 2024", Bold: true}, {Text: " the claimant returned"}},
		},
		{
			name: "date only",
			line: "25 March 2025",
			want: []types.Run{{Text: "25 March 2025", Bold: true}},
		},
		{
			name: "no date",
			line: "The claimant reported pain.",
			want: []types.Run{{Text: "The claimant reported pain."}},
		},
		{
			name: "date not at start",
			line: "On 25 March 2025 she fell",
			want: []types.Run{{Text: "On 25 March 2025 she fell"}},
		},
		{
			name: "markdown bold date",
			line: "**25 March 2025** she fell",
			want: []types.Run{{Text: "25 March 2025", Bold: true}, {Text: " she fell"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineRuns(tt.line))
		})
	}
}

func TestDocument_InsertAfter(t *testing.T) {
	doc := docFromTexts("a", "c")

	doc.InsertAfter(0, NewParagraph([]types.Run{{Text: "b"}}, nil))
	doc.InsertAfter(-1, NewParagraph([]types.Run{{Text: "start"}}, nil))
	doc.InsertAfter(3, NewParagraph([]types.Run{{Text: "end"}}, nil))

	assert.Equal(t, []string{"start", "a", "b", "c", "end"}, doc.Texts())
}
