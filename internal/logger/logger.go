// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides leveled logging for the statement-summarizer CLI.
// Warnings and errors always reach stderr; debug and info messages appear
// only with --verbose. An optional log file rotates through lumberjack.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	std     = newLogger(os.Stderr)
	output  io.Writer = os.Stderr
	file    *lumberjack.Logger
	verbose bool
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	return l
}

// SetVerbose enables or disables debug and info messages.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the console writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	std.SetOutput(sink())
}

// SetFile additionally writes log entries to path, rotating at maxSizeMB.
// An empty path turns the file sink off.
func SetFile(path string, maxSizeMB int) {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
	if path != "" {
		file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			LocalTime:  true,
		}
	}
	std.SetOutput(sink())
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	std.SetOutput(sink())
	return err
}

// sink must be called with mu held.
func sink() io.Writer {
	if file == nil {
		return output
	}
	return io.MultiWriter(output, file)
}

// Action returns an entry tagged with the action name and a fresh run ID, so
// the lines of one summarization can be told apart in a shared log file.
func Action(name string) *logrus.Entry {
	return std.WithFields(logrus.Fields{
		"action": name,
		"run":    uuid.NewString(),
	})
}

// Debug logs a message in verbose mode.
func Debug(format string, args ...any) {
	std.Debugf(format, args...)
}

// Info logs an informational message in verbose mode.
func Info(format string, args ...any) {
	std.Infof(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	std.Warnf(format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	std.Errorf(format, args...)
}
