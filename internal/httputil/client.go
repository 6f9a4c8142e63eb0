// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client shared by the model backends and
// the update check.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

// DefaultUserAgent is sent when the configuration leaves UserAgent empty.
const DefaultUserAgent = "statement-summarizer"

// maxErrorBody caps how much of an error response is quoted in messages.
const maxErrorBody = 512

// NewClient returns a client honoring cfg's timeout and user agent. A zero
// timeout leaves requests unbounded; a local model may take minutes.
func NewClient(cfg types.HTTPConfig) *http.Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{agent: ua, base: http.DefaultTransport},
	}
}

type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(r)
}

// CheckStatus returns an error quoting the start of the body when resp is
// not a 2xx response. The body is left for the caller to close.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
}
