// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one summarization action: extract the statement,
// summarize it, then write the PDF report and the filled-in Word template.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/statement-summarizer/internal/convert"
	"github.com/pdiddy/statement-summarizer/internal/docx"
	"github.com/pdiddy/statement-summarizer/internal/layout"
	"github.com/pdiddy/statement-summarizer/internal/logger"
	"github.com/pdiddy/statement-summarizer/internal/render"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
	"github.com/pdiddy/statement-summarizer/internal/template"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// collisionSuffix is appended to output names that would overwrite an input.
const collisionSuffix = "-summary"

// Options configures one action. The prompt is owned by the caller and
// applies to this call only.
type Options struct {
	Prompt types.PromptProfile
	AI     summarize.Options

	// Template is the .docx report template; required when Word is set.
	Template string
	Anchor   string

	// OutputDir defaults to the directory of the input PDF.
	OutputDir string
	PDF       bool
	Word      bool
}

// Result describes what an action produced.
type Result struct {
	Summary  string
	Title    string
	PDFPath  string
	WordPath string
	Elapsed  time.Duration
}

// Pipeline wires the collaborators of a summarization action.
type Pipeline struct {
	Extractor convert.Extractor
	Backend   summarize.Backend

	// Out receives progress lines; nil discards them.
	Out io.Writer
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

// Process summarizes the statement at pdfPath. A template without the anchor
// section fails before any file is written.
func (p *Pipeline) Process(ctx context.Context, pdfPath string, opts Options) (*Result, error) {
	log := logger.Action("summarize").WithField("file", filepath.Base(pdfPath))

	if err := convert.CheckPDF(pdfPath); err != nil {
		return nil, err
	}
	if opts.Word && opts.Template == "" {
		return nil, fmt.Errorf("word output needs a template (--template)")
	}

	fmt.Fprintf(p.out(), "extracting %s\n", filepath.Base(pdfPath))
	text, err := p.Extractor.Extract(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	log.Debugf("extracted %d characters", len(text))

	fmt.Fprintf(p.out(), "summarizing with %s\n", opts.AI.Model)
	start := time.Now()
	raw, err := summarize.Summarize(ctx, p.Backend, opts.Prompt, text, opts.AI)
	if err != nil {
		return nil, err
	}
	res := &Result{Elapsed: time.Since(start)}
	fmt.Fprintf(p.out(), "model %s took %.2f seconds with temperature %.1f\n", opts.AI.Model, res.Elapsed.Seconds(), opts.AI.Temperature)

	res.Summary = summarize.Clean(raw)
	if res.Summary == "" {
		return nil, fmt.Errorf("%w: %w", types.ErrSummarization, types.ErrEmptySummary)
	}
	res.Title = summarize.Title(res.Summary)

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(pdfPath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrWrite, err)
	}
	base := outputBase(outDir, res.Title, pdfPath, opts.Template)

	// The inserter runs in memory first, so a template without the anchor
	// section leaves no output behind.
	var tpl *docx.Template
	if opts.Word {
		tpl, err = docx.Open(opts.Template)
		if err != nil {
			return nil, err
		}
		defer tpl.Close()
		if err := template.Insert(tpl.Doc, res.Summary, opts.Anchor); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Template, err)
		}
	}

	if opts.PDF {
		res.PDFPath = base + ".pdf"
		if err := render.WriteFile(res.PDFPath, layout.Format(res.Summary), render.Options{Title: res.Title}); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrWrite, err)
		}
		fmt.Fprintf(p.out(), "wrote %s\n", res.PDFPath)
	}

	if tpl != nil {
		res.WordPath = base + ".docx"
		if err := tpl.Save(res.WordPath); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrWrite, err)
		}
		fmt.Fprintf(p.out(), "wrote %s\n", res.WordPath)
	}

	log.WithField("elapsed", res.Elapsed.Round(time.Millisecond)).Info("done")
	return res, nil
}

// outputBase returns the output path without extension. A title that would
// make an output overwrite the input PDF or the template gets a suffix.
func outputBase(dir, title string, inputs ...string) string {
	base := filepath.Join(dir, title)
	for _, in := range inputs {
		if in == "" {
			continue
		}
		inBase := strings.TrimSuffix(in, filepath.Ext(in))
		if samePath(base, inBase) {
			return base + collisionSuffix
		}
	}
	return base
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// InsertFile fills the anchor section of the template at templatePath with
// summary and saves the result to outPath.
func InsertFile(templatePath, outPath, summary, anchor string) error {
	tpl, err := docx.Open(templatePath)
	if err != nil {
		return err
	}
	defer tpl.Close()

	if err := template.Insert(tpl.Doc, summary, anchor); err != nil {
		return fmt.Errorf("%s: %w", templatePath, err)
	}
	if err := tpl.Save(outPath); err != nil {
		return fmt.Errorf("%w: %w", types.ErrWrite, err)
	}
	return nil
}

// RenderFile writes summary as a PDF report to outPath.
func RenderFile(outPath, summary string) error {
	opts := render.Options{Title: summarize.Title(summary)}
	if err := render.WriteFile(outPath, layout.Format(summary), opts); err != nil {
		return fmt.Errorf("%w: %w", types.ErrWrite, err)
	}
	return nil
}
