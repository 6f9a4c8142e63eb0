// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetFile("", 0)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := reset(t)

	SetVerbose(false)
	Debug("hidden %d", 1)
	Info("hidden too")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("extracted %d pages", 3)
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "msg=extracted 3 pages")
}

func TestWarn_AlwaysShown(t *testing.T) {
	buf := reset(t)

	Warn("skipping %s", "notes.txt")
	Error("boom")
	assert.Contains(t, buf.String(), "level=warning msg=skipping notes.txt")
	assert.Contains(t, buf.String(), "level=error msg=boom")
}

func TestAction_RunIDs(t *testing.T) {
	buf := reset(t)

	a := Action("summarize")
	b := Action("summarize")
	assert.NotEqual(t, a.Data["run"], b.Data["run"])

	a.Warn("slow model")
	assert.Contains(t, buf.String(), "action=summarize")
	assert.Contains(t, buf.String(), "run="+a.Data["run"].(string))
}

func TestSetFile(t *testing.T) {
	buf := reset(t)
	path := filepath.Join(t.TempDir(), "summarizer.log")

	SetFile(path, 1)
	Warn("to both sinks")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both sinks")
	assert.Contains(t, buf.String(), "to both sinks")

	Warn("console only")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "console only")
}
