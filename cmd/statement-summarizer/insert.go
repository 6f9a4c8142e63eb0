// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/pipeline"
)

var insertCmd = &cobra.Command{
	Use:   "insert <summary.txt>",
	Short: "Insert a summary into a Word report template",
	Long: `Insert fills the anchor section of a Word template with the lines of an
existing summary, without calling the model. The first non-blank paragraph
after the section heading is replaced by the first line; the remaining lines
follow as new paragraphs. Lines starting with a date such as 25 March 2025
get the date in bold.

The template itself is never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runInsert,
}

func init() {
	insertCmd.Flags().String("template", "", "Word report template (.docx)")
	insertCmd.Flags().String("anchor", "", "section heading to fill (default CIRCUMSTANCES)")
	insertCmd.Flags().StringP("output", "o", "", "output .docx (required)")
	insertCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(insertCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if cfg.Template.Path == "" {
		return fmt.Errorf("no template: pass --template or set template.path in the config")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("output")

	if err := pipeline.InsertFile(cfg.Template.Path, out, string(data), cfg.Template.Anchor); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "summary saved to %s", out)
	return nil
}
