// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the inference server offers",
	Long: `Models asks the configured server for its installed models. When the
server cannot be reached the suggested defaults are listed instead.`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	models, err := backend.Models(cmd.Context())
	if err != nil {
		printWarning(cmd.ErrOrStderr(), "could not list models from %s: %v", cfg.AI.BaseURL, err)
		printNotice(out, "suggested models:")
		listModels(out, types.DefaultModels, cfg.AI.Model)
		return nil
	}
	if len(models) == 0 {
		printWarning(cmd.ErrOrStderr(), "%s has no models installed", cfg.AI.BaseURL)
		return nil
	}
	slices.Sort(models)
	listModels(out, models, cfg.AI.Model)
	return nil
}

// listModels prints one model per line, marking the selected one.
func listModels(w io.Writer, models []string, selected string) {
	for _, m := range models {
		if m == selected {
			successColor.Fprintf(w, "* %s\n", m)
			continue
		}
		fmt.Fprintf(w, "  %s\n", m)
	}
}
