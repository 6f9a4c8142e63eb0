// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout: a local
	// model may take minutes on a long statement.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "statement-summarizer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIBackendKind selects the inference server protocol.
type AIBackendKind string

const (
	BackendOllama AIBackendKind = "ollama"
	BackendOpenAI AIBackendKind = "openai"
)

// AIConfig holds settings for the summarization call.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the inference protocol: ollama or openai.
	Backend AIBackendKind `json:"backend" yaml:"backend"`

	// BaseURL is the inference server address (e.g. "http://localhost:11434").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier (e.g. "gemma3:4b").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against OpenAI-compatible servers that require one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// NumCtx is the context window size passed to the model (default 8192).
	NumCtx int `json:"num_ctx" yaml:"num_ctx"`

	// Temperature is the sampling temperature (default 0.0).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// ExtractorKind identifies the PDF text extraction backend.
type ExtractorKind string

const (
	ExtractorPDF        ExtractorKind = "pdf"
	ExtractorMarkitdown ExtractorKind = "markitdown"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// Backend selects the extractor: pdf (in-process) or markitdown (container).
	Backend ExtractorKind `json:"backend" yaml:"backend"`
}

// TemplateConfig locates the Word report template and its anchor heading.
type TemplateConfig struct {
	// Path is the .docx template. Empty disables Word output.
	Path string `json:"path" yaml:"path"`

	// Anchor is the section heading whose placeholder is replaced
	// (default "CIRCUMSTANCES").
	Anchor string `json:"anchor" yaml:"anchor"`
}

// OutputConfig controls where and what the pipeline writes.
type OutputConfig struct {
	// Dir is the output directory. Empty writes next to the input PDF.
	Dir string `json:"dir" yaml:"dir"`

	// PDF enables the formatted PDF report.
	PDF bool `json:"pdf" yaml:"pdf"`

	// Word enables the filled-in Word template.
	Word bool `json:"word" yaml:"word"`
}

// Config groups all stage configurations.
type Config struct {
	AI         AIConfig         `json:"ai" yaml:"ai"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Template   TemplateConfig   `json:"template" yaml:"template"`
	Output     OutputConfig     `json:"output" yaml:"output"`

	// PromptFile overrides the built-in prompt for this run.
	PromptFile string `json:"prompt_file,omitempty" yaml:"prompt_file,omitempty"`
}

// Defaults for configuration values left unset.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "gemma3:4b"
	DefaultNumCtx  = 8192
	DefaultAnchor  = "CIRCUMSTANCES"
)

// DefaultModels lists the models offered when the server cannot be queried.
var DefaultModels = []string{"gemma3:1b", "gemma3:4b", "gemma3:12b"}
