// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PromptProfile is an editable summarization prompt loaded from a YAML or
// TOML file. Zero-valued model settings leave the configured values alone.
type PromptProfile struct {
	// Name labels the profile in log output.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Template is the prompt text. The placeholder {text} is replaced with the
	// extracted statement.
	Template string `json:"template" yaml:"template" toml:"template"`

	// Model overrides AIConfig.Model when set.
	Model string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`

	// NumCtx overrides AIConfig.NumCtx when positive.
	NumCtx int `json:"num_ctx,omitempty" yaml:"num_ctx,omitempty" toml:"num_ctx,omitempty"`

	// Temperature overrides AIConfig.Temperature when set.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty"`
}
