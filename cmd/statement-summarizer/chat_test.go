// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-summarizer/internal/chat"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
)

type echoBackend struct {
	fail bool
}

func (b *echoBackend) Chat(_ context.Context, msgs []summarize.Message, _ summarize.Options) (string, error) {
	if b.fail {
		return "", errors.New("connection refused")
	}
	return "echo: " + msgs[len(msgs)-1].Content, nil
}

func (b *echoBackend) Models(context.Context) ([]string, error) { return nil, nil }

func TestChatLoop(t *testing.T) {
	s := &chat.Session{Backend: &echoBackend{}, Options: summarize.Options{Model: "gemma3:4b"}}
	in := strings.NewReader("hello\n/bogus\n/model llama3.2\nagain\n/quit\nnever sent\n")
	var out, errOut bytes.Buffer

	require.NoError(t, chatLoop(context.Background(), s, in, &out, &errOut))

	assert.Contains(t, out.String(), "gemma3:4b> echo: hello")
	assert.Contains(t, out.String(), "model set to llama3.2")
	assert.Contains(t, out.String(), "llama3.2> echo: again")
	assert.NotContains(t, out.String(), "never sent")
	assert.Contains(t, errOut.String(), "unknown command /bogus")
	assert.Len(t, s.History(), 4)
}

func TestChatLoop_ErrorsDoNotEndSession(t *testing.T) {
	b := &echoBackend{fail: true}
	s := &chat.Session{Backend: b, Options: summarize.Options{Model: "gemma3:4b"}}
	in := strings.NewReader("first\n")
	var out, errOut bytes.Buffer

	require.NoError(t, chatLoop(context.Background(), s, in, &out, &errOut), "EOF ends the loop cleanly")
	assert.Contains(t, errOut.String(), "connection refused")
	assert.Empty(t, s.History())
}

func TestListModels(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	var buf bytes.Buffer
	listModels(&buf, []string{"gemma3:4b", "llama3.2:3b"}, "llama3.2:3b")
	assert.Equal(t, "  gemma3:4b\n* llama3.2:3b\n", buf.String())
}
