// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-summarizer/internal/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render <summary.txt>",
	Short: "Render a summary text file as a formatted PDF report",
	Long: `Render lays out an existing summary (for example one edited by hand) as a
PDF report without calling the model. **Bold** lines become headings, lines
starting with • become bullets, and other lines are joined into paragraphs.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output PDF (default: input name with .pdf)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
	}
	if strings.EqualFold(filepath.Ext(args[0]), ".pdf") {
		return fmt.Errorf("input %s is already a PDF; give a text summary", args[0])
	}

	if err := pipeline.RenderFile(out, string(data)); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "summary saved to %s", out)
	return nil
}
