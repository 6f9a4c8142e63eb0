// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the statement-summarizer CLI.
// It turns witness-statement PDFs into Circumstances Report summaries using a
// locally hosted language model, writing a formatted PDF and a filled-in Word
// template.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/logger"
	"github.com/pdiddy/statement-summarizer/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the statement-summarizer CLI.
var rootCmd = &cobra.Command{
	Use:   "statement-summarizer",
	Short: "Summarize witness statements into Circumstances Reports",
	Long: `statement-summarizer extracts the text of a witness-statement PDF, asks a
locally hosted language model (Ollama by default) for a Circumstances Report,
and writes the result as a formatted PDF and into a Word report template.

Use summarize for single files, watch to process PDFs dropped into a folder,
and chat for a free-form conversation with the model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags of the running command take precedence over config and env.
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				viper.BindPFlag(key, f)
			}
		})

		logger.SetVerbose(viper.GetBool("verbose"))
		if path := viper.GetString("log.file"); path != "" {
			logger.SetFile(path, viper.GetInt("log.max_size_mb"))
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file %s", used)
		}

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets: %v", keys)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./statement-summarizer.yaml or ~/.config/statement-summarizer/statement-summarizer.yaml)")
	pf.BoolP("verbose", "v", false, "log debug output to stderr")
	pf.String("log-file", "", "also write logs to this file (rotated)")
	pf.String("backend", "", "inference protocol: ollama or openai (default ollama)")
	pf.String("base-url", "", "inference server URL (default "+defaultBaseURL()+")")
	pf.StringP("model", "m", "", "model identifier (default "+defaultModel()+")")
	pf.Int("num-ctx", 0, "context window size in tokens (default 8192)")
	pf.Float64("temperature", 0, "sampling temperature")
	pf.Duration("timeout", 0, "model request timeout (0 waits indefinitely)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("statement-summarizer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "statement-summarizer"))
		}
	}

	viper.SetEnvPrefix("STATEMENT_SUMMARIZER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warn("reading config: %v", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
