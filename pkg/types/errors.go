// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds reported once per top-level action. Failures wrap one of these
// together with the underlying cause, so callers can test with errors.Is.
var (
	// ErrUnsupportedFileType is returned for inputs whose extension is not handled.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrSectionNotFound is returned when a template has no anchor heading.
	ErrSectionNotFound = errors.New("section not found")

	// ErrNoInsertionPoint is returned when the anchor heading exists but no
	// non-blank paragraph follows it.
	ErrNoInsertionPoint = errors.New("no insertion point after section heading")

	// ErrEmptySummary is returned when there is nothing to insert.
	ErrEmptySummary = errors.New("summary has no content")

	// ErrExtraction wraps failures of the text extraction library.
	ErrExtraction = errors.New("text extraction failed")

	// ErrSummarization wraps model call errors and malformed responses.
	ErrSummarization = errors.New("summarization failed")

	// ErrWrite wraps output serialization errors.
	ErrWrite = errors.New("writing output failed")
)
