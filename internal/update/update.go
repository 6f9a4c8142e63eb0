// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package update asks GitHub whether a newer release of the tool exists.
// Any failure (offline, rate limited, unparseable tags) reads as "no update".
package update

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/blang/semver"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/pdiddy/statement-summarizer/internal/logger"
)

// Default release repository.
const (
	DefaultOwner = "pdiddy"
	DefaultRepo  = "statement-summarizer"
)

// Result describes the outcome of a check.
type Result struct {
	Current   string
	Latest    string
	URL       string
	Available bool
}

// Checker queries the latest GitHub release of one repository.
type Checker struct {
	owner string
	repo  string
	gh    *github.Client
}

// NewChecker returns a checker using client for requests. A non-empty token
// authenticates them, which raises GitHub's rate limit.
func NewChecker(ctx context.Context, owner, repo, token string, client *http.Client) *Checker {
	if client == nil {
		client = http.DefaultClient
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, client), ts)
	}
	return &Checker{owner: owner, repo: repo, gh: github.NewClient(client)}
}

// SetBaseURL points the checker at a GitHub Enterprise or test server.
func (c *Checker) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing GitHub API URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// Check compares current against the latest release tag.
func (c *Checker) Check(ctx context.Context, current string) Result {
	res := Result{Current: current}

	cur, err := semver.ParseTolerant(current)
	if err != nil {
		logger.Debug("update check skipped: version %q is not semver: %v", current, err)
		return res
	}

	rel, _, err := c.gh.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		logger.Debug("update check failed: %v", err)
		return res
	}

	res.Latest = rel.GetTagName()
	res.URL = rel.GetHTMLURL()
	latest, err := semver.ParseTolerant(res.Latest)
	if err != nil {
		logger.Debug("update check: release tag %q is not semver: %v", res.Latest, err)
		return res
	}
	res.Available = latest.GT(cur)
	return res
}
