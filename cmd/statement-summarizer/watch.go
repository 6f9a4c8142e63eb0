// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-summarizer/internal/logger"
	"github.com/pdiddy/statement-summarizer/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Summarize PDFs as they are dropped into a folder",
	Long: `Watch monitors a folder and summarizes each .pdf file copied or saved into
it, one at a time. Other files are reported and skipped. Files written by the
summarizer itself are ignored, so the output directory may be the watched
folder. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addActionFlags(watchCmd)
	watchCmd.Flags().Duration("settle", 750*time.Millisecond, "quiet period after the last write before a file is processed")
	rootCmd.AddCommand(watchCmd)
}

const minSettle = 100 * time.Millisecond

// dropFolder tracks files arriving in the watched folder until they have
// been quiet for the settle period.
type dropFolder struct {
	settle  time.Duration
	pending map[string]time.Time
	ignored map[string]bool
}

func newDropFolder(settle time.Duration) *dropFolder {
	return &dropFolder{
		settle:  settle,
		pending: make(map[string]time.Time),
		ignored: make(map[string]bool),
	}
}

// ignore marks a path the summarizer wrote itself.
func (d *dropFolder) ignore(path string) {
	if path != "" {
		d.ignored[absPath(path)] = true
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// observe records an event. It returns ErrUnsupportedFileType for a new file
// that is not a PDF.
func (d *dropFolder) observe(ev fsnotify.Event, now time.Time) error {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return nil
	}
	path := absPath(ev.Name)
	name := filepath.Base(path)
	if d.ignored[path] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		if ev.Has(fsnotify.Create) {
			return fmt.Errorf("%w: %s (drop a .pdf file)", types.ErrUnsupportedFileType, name)
		}
		return nil
	}
	d.pending[path] = now
	return nil
}

// ready returns, in name order, the pending files quiet since settle ago.
func (d *dropFolder) ready(now time.Time) []string {
	var paths []string
	for path, last := range d.pending {
		if now.Sub(last) >= d.settle {
			paths = append(paths, path)
			delete(d.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := args[0]

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	a, err := newAction(ctx, cmd, os.Stdout)
	if err != nil {
		return err
	}
	settle, _ := cmd.Flags().GetDuration("settle")
	if settle < minSettle {
		settle = minSettle
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	drops := newDropFolder(settle)
	tick := time.NewTicker(settle / 3)
	defer tick.Stop()

	printNotice(os.Stdout, "watching %s for PDF statements (Ctrl-C to stop)", dir)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := drops.observe(ev, time.Now()); err != nil {
				printWarning(os.Stderr, "%v", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)

		case now := <-tick.C:
			for _, path := range drops.ready(now) {
				res, err := a.run(ctx, path)
				if err != nil {
					continue
				}
				drops.ignore(res.PDFPath)
				drops.ignore(res.WordPath)
			}
		}
	}
}
