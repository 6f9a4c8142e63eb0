// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/convert"
	"github.com/pdiddy/statement-summarizer/internal/logger"
	"github.com/pdiddy/statement-summarizer/internal/prompt"
	"github.com/pdiddy/statement-summarizer/internal/secrets"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
	"github.com/pdiddy/statement-summarizer/internal/update"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// flagKeys maps command-line flags to configuration keys. A flag is bound
// only on the command that declares it.
var flagKeys = map[string]string{
	"verbose":     "verbose",
	"log-file":    "log.file",
	"backend":     "ai.backend",
	"base-url":    "ai.base_url",
	"model":       "ai.model",
	"num-ctx":     "ai.num_ctx",
	"temperature": "ai.temperature",
	"timeout":     "ai.timeout",
	"extractor":   "extraction.backend",
	"template":    "template.path",
	"anchor":      "template.anchor",
	"output-dir":  "output.dir",
	"prompt-file": "prompt_file",
}

// envKeyReplacer maps nested keys to environment names, e.g. ai.base_url to
// STATEMENT_SUMMARIZER_AI_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

func defaultBaseURL() string { return types.DefaultBaseURL }
func defaultModel() string   { return types.DefaultModel }

func setDefaults(v *viper.Viper) {
	v.SetDefault("secrets_dir", ".secrets/")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("ai.backend", string(types.BackendOllama))
	v.SetDefault("ai.base_url", types.DefaultBaseURL)
	v.SetDefault("ai.model", types.DefaultModel)
	v.SetDefault("ai.num_ctx", types.DefaultNumCtx)
	v.SetDefault("ai.temperature", 0.0)
	v.SetDefault("ai.timeout", "0s")
	v.SetDefault("ai.user_agent", "statement-summarizer/"+version)
	v.SetDefault("extraction.backend", string(types.ExtractorPDF))
	v.SetDefault("template.anchor", types.DefaultAnchor)
	v.SetDefault("output.pdf", true)
	v.SetDefault("output.word", true)
	v.SetDefault("update.owner", update.DefaultOwner)
	v.SetDefault("update.repo", update.DefaultRepo)
	v.SetDefault("update.timeout", "10s")
}

// loadConfig assembles the effective configuration from defaults, the config
// file, the environment and the running command's flags.
func loadConfig(v *viper.Viper) types.Config {
	cfg := types.Config{
		AI: types.AIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("ai.timeout"),
				UserAgent: v.GetString("ai.user_agent"),
			},
			Backend:     types.AIBackendKind(v.GetString("ai.backend")),
			BaseURL:     v.GetString("ai.base_url"),
			Model:       v.GetString("ai.model"),
			APIKey:      v.GetString("ai.api_key"),
			NumCtx:      v.GetInt("ai.num_ctx"),
			Temperature: v.GetFloat64("ai.temperature"),
		},
		Extraction: types.ExtractionConfig{
			Backend: types.ExtractorKind(v.GetString("extraction.backend")),
		},
		Template: types.TemplateConfig{
			Path:   v.GetString("template.path"),
			Anchor: v.GetString("template.anchor"),
		},
		Output: types.OutputConfig{
			Dir:  v.GetString("output.dir"),
			PDF:  v.GetBool("output.pdf"),
			Word: v.GetBool("output.word"),
		},
		PromptFile: v.GetString("prompt_file"),
	}
	secrets.Apply(&cfg, loadedSecrets)
	return cfg
}

// loadPrompt returns the built-in prompt, or the profile at cfg.PromptFile
// with its model overrides applied to cfg.AI. Model settings given as flags
// on cmd keep precedence over the profile.
func loadPrompt(cmd *cobra.Command, cfg *types.Config) (types.PromptProfile, error) {
	if cfg.PromptFile == "" {
		return prompt.Default(), nil
	}
	p, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		return types.PromptProfile{}, err
	}

	explicit := cfg.AI
	prompt.Apply(p, &cfg.AI)
	if flagChanged(cmd, "model") {
		cfg.AI.Model = explicit.Model
	}
	if flagChanged(cmd, "num-ctx") {
		cfg.AI.NumCtx = explicit.NumCtx
	}
	if flagChanged(cmd, "temperature") {
		cfg.AI.Temperature = explicit.Temperature
	}
	logger.Info("using prompt %s from %s", p.Name, cfg.PromptFile)
	return p, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// newBackend builds the model backend for cfg.
func newBackend(cfg types.Config) (summarize.Backend, error) {
	b, err := summarize.New(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("configuring AI backend: %w", err)
	}
	return b, nil
}

// newExtractor builds the text extractor for cfg.
func newExtractor(ctx context.Context, cfg types.Config) (convert.Extractor, error) {
	ex, err := convert.New(ctx, cfg.Extraction.Backend)
	if err != nil {
		return nil, fmt.Errorf("configuring extractor: %w", err)
	}
	return ex, nil
}
