// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the statement-summarizer
// pipeline: configuration, layout blocks produced from model output, prompt
// profiles, and the error kinds reported at the action boundary.
package types
