// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/statement-summarizer/internal/httputil"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// OllamaBackend talks to an Ollama server's native API.
type OllamaBackend struct {
	baseURL string
	client  *http.Client
}

// NewOllama returns a backend for the server at baseURL (default
// http://localhost:11434). A nil client uses http.DefaultClient.
func NewOllama(baseURL string, client *http.Client) *OllamaBackend {
	if baseURL == "" {
		baseURL = types.DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaBackend{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// ollamaOptions carries the model parameters. Temperature is always sent so
// that 0.0 is not replaced by the server's default.
type ollamaOptions struct {
	NumCtx      int     `json:"num_ctx,omitempty"`
	Temperature float64 `json:"temperature"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Chat calls /api/chat with streaming off.
func (o *OllamaBackend) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	reqBody := ollamaChatRequest{
		Model:   opts.Model,
		Stream:  false,
		Options: ollamaOptions{NumCtx: opts.NumCtx, Temperature: opts.Temperature},
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, ollamaMessage{Role: m.Role, Content: m.Content})
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama at %s: %w", o.baseURL, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}

	var cResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	if cResp.Error != "" {
		return "", fmt.Errorf("ollama: %s", cResp.Error)
	}
	return cResp.Message.Content, nil
}

// Models lists the locally pulled models via /api/tags.
func (o *OllamaBackend) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama at %s: %w", o.baseURL, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding ollama tags: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
