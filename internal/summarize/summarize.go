// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize sends statements to a language model and post-processes
// the completion into report text.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/statement-summarizer/internal/httputil"
	"github.com/pdiddy/statement-summarizer/internal/logger"
	"github.com/pdiddy/statement-summarizer/internal/prompt"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// Options are the per-call model settings.
type Options struct {
	Model       string
	NumCtx      int
	Temperature float64
}

// OptionsFrom returns the call options configured in cfg.
func OptionsFrom(cfg types.AIConfig) Options {
	return Options{Model: cfg.Model, NumCtx: cfg.NumCtx, Temperature: cfg.Temperature}
}

// Backend abstracts the inference server so tests can supply a mock. One
// call returns one complete, non-streamed reply.
type Backend interface {
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)

	// Models lists the model identifiers the server offers.
	Models(ctx context.Context) ([]string, error)
}

// New returns the backend selected by cfg.Backend.
func New(cfg types.AIConfig) (Backend, error) {
	client := httputil.NewClient(cfg.HTTPConfig)
	switch cfg.Backend {
	case "", types.BackendOllama:
		return NewOllama(cfg.BaseURL, client), nil
	case types.BackendOpenAI:
		base := cfg.BaseURL
		if base == types.DefaultBaseURL {
			base += "/v1"
		}
		return NewOpenAI(base, cfg.APIKey, client), nil
	default:
		return nil, fmt.Errorf("unknown AI backend %q", cfg.Backend)
	}
}

// Summarize fills p with text, sends it as a single user message and returns
// the raw completion. Any failure, including an empty reply, wraps
// types.ErrSummarization.
func Summarize(ctx context.Context, b Backend, p types.PromptProfile, text string, opts Options) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: statement has no text", types.ErrSummarization)
	}

	msgs := []Message{{Role: RoleUser, Content: prompt.Fill(p, text)}}

	start := time.Now()
	reply, err := b.Chat(ctx, msgs, opts)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, types.ErrSummarization) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", types.ErrSummarization, err)
	}
	logger.Debug("model %s took %.2f seconds with temperature %.1f", opts.Model, elapsed.Seconds(), opts.Temperature)

	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("%w: model %s returned an empty reply", types.ErrSummarization, opts.Model)
	}
	return reply, nil
}
