// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	noticeColor  = color.New(color.FgCyan)
)

func printSuccess(w io.Writer, format string, args ...any) {
	successColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "! "+format+"\n", args...)
}

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func printNotice(w io.Writer, format string, args ...any) {
	noticeColor.Fprintf(w, format+"\n", args...)
}
