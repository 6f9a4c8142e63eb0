// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/httputil"
	"github.com/pdiddy/statement-summarizer/internal/secrets"
	"github.com/pdiddy/statement-summarizer/internal/update"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "statement-summarizer %s\n", version)

	check, _ := cmd.Flags().GetBool("check")
	if !check {
		return nil
	}

	ctx := cmd.Context()
	client := httputil.NewClient(types.HTTPConfig{
		Timeout:   viper.GetDuration("update.timeout"),
		UserAgent: viper.GetString("ai.user_agent"),
	})
	checker := update.NewChecker(ctx, viper.GetString("update.owner"), viper.GetString("update.repo"), loadedSecrets[secrets.GitHubToken], client)
	if base := viper.GetString("update.api_url"); base != "" {
		if err := checker.SetBaseURL(base); err != nil {
			return err
		}
	}

	res := checker.Check(ctx, version)
	switch {
	case res.Available:
		printNotice(out, "version %s is available: %s", res.Latest, res.URL)
	case res.Latest != "":
		printSuccess(out, "up to date")
	default:
		printWarning(cmd.ErrOrStderr(), "could not determine the latest release")
	}
	return nil
}
