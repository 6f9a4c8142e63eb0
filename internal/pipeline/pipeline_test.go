// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-summarizer/internal/docx"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// fakeExtractor returns canned text and counts calls.
type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

// fakeBackend returns a canned reply.
type fakeBackend struct {
	reply string
	err   error
}

func (f *fakeBackend) Chat(context.Context, []summarize.Message, summarize.Options) (string, error) {
	return f.reply, f.err
}

func (f *fakeBackend) Models(context.Context) ([]string, error) { return nil, nil }

const reply = `Here is the summary:

**Circumstances Report**

**25 March 2025** The claimant arrived at work.
She slipped on a wet floor.

Do you want me to add anything?`

func writeTemplate(t *testing.T, path string, paragraphs ...string) {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		body.String()+`</w:body></w:document>`)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func statement(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestProcess_PDFAndWord(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	pdfPath := statement(t, in, "statement.pdf")
	tplPath := filepath.Join(in, "template.docx")
	writeTemplate(t, tplPath, "Report", "CIRCUMSTANCES", "[placeholder]", "MEDICAL HISTORY")

	var progress bytes.Buffer
	p := &Pipeline{
		Extractor: &fakeExtractor{text: "I slipped at work."},
		Backend:   &fakeBackend{reply: reply},
		Out:       &progress,
	}
	res, err := p.Process(context.Background(), pdfPath, Options{
		AI:        summarize.Options{Model: "gemma3:4b"},
		Prompt:    types.PromptProfile{Template: "{text}"},
		Template:  tplPath,
		OutputDir: out,
		PDF:       true,
		Word:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Circumstances Report", res.Title)
	assert.Equal(t, "**Circumstances Report**\n\n**25 March 2025** The claimant arrived at work.\nShe slipped on a wet floor.", res.Summary)
	assert.Equal(t, filepath.Join(out, "Circumstances Report.pdf"), res.PDFPath)
	assert.Equal(t, filepath.Join(out, "Circumstances Report.docx"), res.WordPath)

	data, err := os.ReadFile(res.PDFPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	doc, err := docx.Open(res.WordPath)
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, []string{
		"Report",
		"CIRCUMSTANCES",
		"Circumstances Report",
		"25 March 2025 The claimant arrived at work.",
		"She slipped on a wet floor.",
		"MEDICAL HISTORY",
	}, doc.Doc.Texts())

	assert.Contains(t, progress.String(), "summarizing with gemma3:4b")
	assert.Regexp(t, `model gemma3:4b took \d+\.\d{2} seconds with temperature 0\.0\n`, progress.String())
	assert.Contains(t, progress.String(), "wrote "+res.PDFPath)
}

func TestProcess_SectionNotFoundWritesNothing(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	pdfPath := statement(t, in, "statement.pdf")
	tplPath := filepath.Join(in, "template.docx")
	writeTemplate(t, tplPath, "Report", "BACKGROUND", "text")
	before, err := os.ReadFile(tplPath)
	require.NoError(t, err)

	p := &Pipeline{Extractor: &fakeExtractor{text: "x"}, Backend: &fakeBackend{reply: reply}}
	_, err = p.Process(context.Background(), pdfPath, Options{Template: tplPath, OutputDir: out, PDF: true, Word: true})
	require.ErrorIs(t, err, types.ErrSectionNotFound)

	assert.Empty(t, dirEntries(t, out))
	after, err := os.ReadFile(tplPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProcess_Errors(t *testing.T) {
	dir := t.TempDir()
	pdfPath := statement(t, dir, "statement.pdf")

	tests := []struct {
		name      string
		path      string
		extractor *fakeExtractor
		backend   *fakeBackend
		opts      Options
		wantErr   error
		wantMsg   string
	}{
		{
			name:      "not a pdf",
			path:      filepath.Join(dir, "statement.docx"),
			extractor: &fakeExtractor{},
			backend:   &fakeBackend{},
			opts:      Options{PDF: true},
			wantErr:   types.ErrUnsupportedFileType,
		},
		{
			name:      "extraction fails",
			path:      pdfPath,
			extractor: &fakeExtractor{err: types.ErrExtraction},
			backend:   &fakeBackend{},
			opts:      Options{PDF: true},
			wantErr:   types.ErrExtraction,
		},
		{
			name:      "model fails",
			path:      pdfPath,
			extractor: &fakeExtractor{text: "x"},
			backend:   &fakeBackend{err: errors.New("connection refused")},
			opts:      Options{PDF: true},
			wantErr:   types.ErrSummarization,
		},
		{
			name:      "reply is only chatter",
			path:      pdfPath,
			extractor: &fakeExtractor{text: "x"},
			backend:   &fakeBackend{reply: "Here is the summary:"},
			opts:      Options{PDF: true},
			wantErr:   types.ErrEmptySummary,
		},
		{
			name:      "word without template",
			path:      pdfPath,
			extractor: &fakeExtractor{text: "x"},
			backend:   &fakeBackend{reply: reply},
			opts:      Options{Word: true},
			wantMsg:   "needs a template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pipeline{Extractor: tt.extractor, Backend: tt.backend}
			tt.opts.OutputDir = t.TempDir()
			_, err := p.Process(context.Background(), tt.path, tt.opts)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
			assert.Empty(t, dirEntries(t, tt.opts.OutputDir))
		})
	}
}

func TestProcess_NameCollision(t *testing.T) {
	dir := t.TempDir()
	pdfPath := statement(t, dir, "summary_report.pdf")

	p := &Pipeline{Extractor: &fakeExtractor{text: "x"}, Backend: &fakeBackend{reply: "No title here."}}
	res, err := p.Process(context.Background(), pdfPath, Options{PDF: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "summary_report-summary.pdf"), res.PDFPath)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data, "input is untouched")
}

func TestInsertFile(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.docx")
	outPath := filepath.Join(dir, "out.docx")
	writeTemplate(t, tplPath, "circumstances", "", "[placeholder]")

	require.NoError(t, InsertFile(tplPath, outPath, "one\ntwo", ""))

	doc, err := docx.Open(outPath)
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, []string{"circumstances", "", "one", "two"}, doc.Doc.Texts())

	err = InsertFile(tplPath, filepath.Join(dir, "other.docx"), "one", "MEDICAL HISTORY")
	assert.ErrorIs(t, err, types.ErrSectionNotFound)
	assert.NotContains(t, dirEntries(t, dir), "other.docx")
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, RenderFile(path, "**Title**\n\n• one\n• two"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	err = RenderFile(filepath.Join(t.TempDir(), "missing", "report.pdf"), "text")
	assert.ErrorIs(t, err, types.ErrWrite)
}
