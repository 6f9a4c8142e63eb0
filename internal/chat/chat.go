// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat implements a free-form conversation with the model. Imported
// PDF or Word text is staged and sent with the next message.
package chat

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/statement-summarizer/internal/convert"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// Response is the outcome of one input line.
type Response struct {
	// Reply is the model's answer; empty for commands.
	Reply string

	// Notice is a status line for commands.
	Notice string

	// Quit asks the caller to end the session.
	Quit bool
}

// Session holds the conversation history. It is not safe for concurrent use.
type Session struct {
	Backend   summarize.Backend
	Extractor convert.Extractor
	Options   summarize.Options

	history []summarize.Message
	staged  []string
}

// History returns a copy of the exchanged messages.
func (s *Session) History() []summarize.Message {
	return append([]summarize.Message(nil), s.history...)
}

// Handle processes one line of input: a slash command or a message.
func (s *Session) Handle(ctx context.Context, line string) (Response, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "/") {
		return s.command(ctx, line)
	}
	return s.send(ctx, line)
}

func (s *Session) command(ctx context.Context, line string) (Response, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return Response{Quit: true}, nil

	case "/reset":
		s.history = nil
		s.staged = nil
		return Response{Notice: "conversation cleared"}, nil

	case "/model":
		if arg == "" {
			return Response{Notice: "model: " + s.Options.Model}, nil
		}
		s.Options.Model = arg
		return Response{Notice: "model set to " + arg}, nil

	case "/file":
		if arg == "" {
			return Response{}, fmt.Errorf("usage: /file <path to .pdf or .docx>")
		}
		text, err := convert.ReadDocument(ctx, s.Extractor, arg)
		if err != nil {
			return Response{}, err
		}
		text = strings.TrimSpace(text)
		s.staged = append(s.staged, text)
		return Response{Notice: fmt.Sprintf("staged %d characters from %s; they are sent with your next message", len(text), filepath.Base(arg))}, nil

	case "/help":
		return Response{Notice: "commands: /file <path>, /model [name], /reset, /quit"}, nil

	default:
		return Response{}, fmt.Errorf("unknown command %s (try /help)", name)
	}
}

// send adds staged file text to line and asks the model. The exchange enters
// the history only when the call succeeds.
func (s *Session) send(ctx context.Context, line string) (Response, error) {
	parts := append(append([]string(nil), s.staged...), line)
	content := strings.TrimSpace(strings.Join(parts, "\n"))
	if content == "" {
		return Response{}, nil
	}

	msgs := append(s.History(), summarize.Message{Role: summarize.RoleUser, Content: content})
	reply, err := s.Backend.Chat(ctx, msgs, s.Options)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", types.ErrSummarization, err)
	}
	reply = strings.TrimSpace(reply)

	s.history = append(msgs, summarize.Message{Role: summarize.RoleAssistant, Content: reply})
	s.staged = nil
	return Response{Reply: reply}, nil
}
