// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Inspect or export the summary prompt",
}

var promptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective prompt and model settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(viper.GetViper())
		p, err := loadPrompt(cmd, &cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printNotice(out, "# %s (model %s, num_ctx %d, temperature %g)", p.Name, cfg.AI.Model, cfg.AI.NumCtx, cfg.AI.Temperature)
		fmt.Fprintln(out, p.Template)
		return nil
	},
}

var promptInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the built-in prompt to a file for editing",
	Long: `Init writes the built-in prompt as a profile. The extension selects the
format: .yaml, .toml, or .txt/.md for the bare template. Use the file with
--prompt-file or the prompt_file config key. The template must keep the
{text} placeholder where the statement goes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := prompt.Save(path, prompt.Default()); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "prompt written to %s", path)
		return nil
	},
}

func init() {
	promptShowCmd.Flags().String("prompt-file", "", "prompt profile to show instead of the configured one")
	promptInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	promptCmd.AddCommand(promptShowCmd, promptInitCmd)
	rootCmd.AddCommand(promptCmd)
}
