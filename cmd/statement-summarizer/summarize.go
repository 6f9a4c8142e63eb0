// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/pipeline"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <statement.pdf>...",
	Short: "Summarize witness-statement PDFs into report documents",
	Long: `Summarize extracts each PDF's text, asks the model for a Circumstances
Report, and writes it as a formatted PDF and into the Word template's
CIRCUMSTANCES section. Outputs are named after the report title and written
next to the input unless --output-dir is given.

Files are processed one at a time. A failure is reported and the remaining
files are still processed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummarize,
}

func init() {
	addActionFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}

// addActionFlags declares the flags shared by summarize and watch.
func addActionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("template", "", "Word report template (.docx); without it only the PDF is written")
	f.String("anchor", "", "template section heading to fill (default "+types.DefaultAnchor+")")
	f.StringP("output-dir", "o", "", "output directory (default: next to each input)")
	f.String("prompt-file", "", "prompt profile (.txt, .md, .yaml or .toml) for this run")
	f.String("extractor", "", "text extraction backend: pdf or markitdown (default pdf)")
	f.Bool("no-pdf", false, "skip the PDF report")
	f.Bool("no-word", false, "skip the Word document")
}

// action bundles a configured pipeline with its options.
type action struct {
	pipe *pipeline.Pipeline
	opts pipeline.Options
}

func newAction(ctx context.Context, cmd *cobra.Command, out io.Writer) (*action, error) {
	cfg := loadConfig(viper.GetViper())

	p, err := loadPrompt(cmd, &cfg)
	if err != nil {
		return nil, err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	extractor, err := newExtractor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	noPDF, _ := cmd.Flags().GetBool("no-pdf")
	noWord, _ := cmd.Flags().GetBool("no-word")
	opts := pipeline.Options{
		Prompt:    p,
		AI:        summarize.OptionsFrom(cfg.AI),
		Template:  cfg.Template.Path,
		Anchor:    cfg.Template.Anchor,
		OutputDir: cfg.Output.Dir,
		PDF:       cfg.Output.PDF && !noPDF,
		Word:      cfg.Output.Word && !noWord && cfg.Template.Path != "",
	}
	if !opts.PDF && !opts.Word {
		return nil, fmt.Errorf("nothing to write: enable the PDF report or give a --template")
	}

	return &action{
		pipe: &pipeline.Pipeline{Extractor: extractor, Backend: backend, Out: out},
		opts: opts,
	}, nil
}

// run processes one file and reports the outcome once, at the action
// boundary.
func (a *action) run(ctx context.Context, path string) (*pipeline.Result, error) {
	res, err := a.pipe.Process(ctx, path, a.opts)
	if err != nil {
		printError(os.Stderr, fmt.Errorf("%s: %w", path, err))
		return nil, err
	}
	for _, out := range []string{res.PDFPath, res.WordPath} {
		if out != "" {
			printSuccess(os.Stdout, "summary saved to %s", out)
		}
	}
	return res, nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAction(ctx, cmd, os.Stdout)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		if _, err := a.run(ctx, path); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statement(s) failed", failed, len(args))
	}
	return nil
}
