// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt holds the summarization prompt: the built-in Circumstances
// Report template and editable profiles loaded from text, YAML or TOML files.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// Placeholder marks where the extracted statement goes in a template.
const Placeholder = "{text}"

// DefaultName labels the built-in profile.
const DefaultName = "circumstances-report"

const defaultTemplate = `Please read through the following witness statement and generate only the following two sections of a Circumstances Report:

1. Description of Events (Chronological)
- Present the events in the order they occurred.
- Use **third-person formal investigative tone**, as if writing a report **about the claimant**, not from their perspective.
- Begin each entry with the date in bold (e.g., **25 March 2025**).
- Use a new paragraph for each distinct event or observation, but do not begin that paragraph with a date.
- Do not include headings like "(continued)" or first-person language such as "I" or "my."

2. Post-Incident Condition
- Present the post-incident effects based on what is stated in the statement.
- Maintain a professional tone as if writing a report, not repeating the witness's words verbatim.
- Do not speculate or add fluff. Focus only on facts stated in the statement.

ONLY include factual information stated in the witness statement. Do not add opinions or assumptions.

Witness Statement:
{text}`

// Default returns the built-in profile. It carries no model overrides.
func Default() types.PromptProfile {
	return types.PromptProfile{Name: DefaultName, Template: defaultTemplate}
}

// Fill substitutes text for every placeholder in p's template.
func Fill(p types.PromptProfile, text string) string {
	return strings.ReplaceAll(p.Template, Placeholder, text)
}

// Load reads a profile from path. Plain .txt and .md files hold the template
// alone; .yaml, .yml and .toml files hold a full profile.
func Load(path string) (types.PromptProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PromptProfile{}, fmt.Errorf("reading prompt %s: %w", path, err)
	}

	base := filepath.Base(path)
	p := types.PromptProfile{Name: strings.TrimSuffix(base, filepath.Ext(base))}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", "":
		p.Template = string(data)
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return types.PromptProfile{}, fmt.Errorf("parsing prompt %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return types.PromptProfile{}, fmt.Errorf("parsing prompt %s: %w", path, err)
		}
	default:
		return types.PromptProfile{}, fmt.Errorf("%w: prompt %s (expected .txt, .md, .yaml or .toml)", types.ErrUnsupportedFileType, base)
	}

	p.Template = strings.TrimSpace(p.Template)
	if !strings.Contains(p.Template, Placeholder) {
		return types.PromptProfile{}, fmt.Errorf("prompt %s has no %s placeholder", path, Placeholder)
	}
	return p, nil
}

// Save writes p to path in the format its extension selects, for editing and
// later use with --prompt-file.
func Save(path string, p types.PromptProfile) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data = []byte(p.Template + "\n")
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(p); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	case ".toml":
		data, err = toml.Marshal(p)
	default:
		return fmt.Errorf("%w: prompt %s (expected .txt, .md, .yaml or .toml)", types.ErrUnsupportedFileType, filepath.Base(path))
	}
	if err != nil {
		return fmt.Errorf("encoding prompt: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing prompt %s: %w", path, err)
	}
	return nil
}

// Apply overlays p's model settings on cfg.
func Apply(p types.PromptProfile, cfg *types.AIConfig) {
	if p.Model != "" {
		cfg.Model = p.Model
	}
	if p.NumCtx > 0 {
		cfg.NumCtx = p.NumCtx
	}
	if p.Temperature != nil {
		cfg.Temperature = *p.Temperature
	}
}
