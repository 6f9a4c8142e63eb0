// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/statement-summarizer/internal/logger"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// Key files understood by the CLI.
const (
	// OpenAIAPIKey authenticates the openai backend.
	OpenAIAPIKey = "openai-api-key"

	// GitHubToken raises the rate limit of the update check.
	GitHubToken = "github-token"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret %s: %v", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills credentials the configuration leaves empty. Values set in the
// config file or environment win over the secrets directory.
func Apply(cfg *types.Config, s map[string]string) {
	if cfg.AI.APIKey == "" && cfg.AI.Backend == types.BackendOpenAI {
		cfg.AI.APIKey = s[OpenAIAPIKey]
	}
}
