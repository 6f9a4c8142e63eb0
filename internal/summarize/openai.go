// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend talks to any server implementing the OpenAI chat completions
// API: llama.cpp, LM Studio, vLLM, or Ollama's /v1 endpoint.
type OpenAIBackend struct {
	client *openai.Client
}

// NewOpenAI returns a backend for baseURL (for example
// "http://localhost:11434/v1"). Local servers accept any API key.
func NewOpenAI(baseURL, apiKey string, client *http.Client) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &OpenAIBackend{client: openai.NewClientWithConfig(cfg)}
}

// Chat calls the chat completions endpoint. The context size is a server-side
// setting in this protocol and is not sent.
func (o *OpenAIBackend) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       opts.Model,
		Temperature: temperature(opts.Temperature),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Models lists the server's models.
func (o *OpenAIBackend) Models(ctx context.Context) ([]string, error) {
	list, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing openai models: %w", err)
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

// temperature maps 0 to the smallest positive float32: the request field is
// omitempty, and an omitted temperature means the server default, not 0.
func temperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}
