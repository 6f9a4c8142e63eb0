// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-summarizer/internal/chat"
	"github.com/pdiddy/statement-summarizer/internal/summarize"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the model, optionally about a PDF or Word file",
	Long: `Chat starts a conversation with the configured model. The history is kept
for the session and sent with every message.

Commands:
  /file <path>   stage the text of a .pdf or .docx file for the next message
  /model [name]  show or switch the model
  /reset         clear the conversation
  /quit          leave`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("extractor", "", "text extraction backend for /file: pdf or markitdown (default pdf)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(viper.GetViper())

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(ctx, cfg)
	if err != nil {
		return err
	}

	s := &chat.Session{
		Backend:   backend,
		Extractor: extractor,
		Options:   summarize.OptionsFrom(cfg.AI),
	}
	return chatLoop(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// chatLoop reads lines until EOF or /quit. Errors are reported and the
// session continues.
func chatLoop(ctx context.Context, s *chat.Session, in io.Reader, out, errOut io.Writer) error {
	printNotice(out, "chatting with %s (/help for commands)", s.Options.Model)

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "you> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		resp, err := s.Handle(ctx, sc.Text())
		if err != nil {
			printError(errOut, err)
			continue
		}
		if resp.Quit {
			return nil
		}
		if resp.Notice != "" {
			printNotice(out, "%s", resp.Notice)
		}
		if resp.Reply != "" {
			fmt.Fprintf(out, "%s> %s\n\n", s.Options.Model, resp.Reply)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
