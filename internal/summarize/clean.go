// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"regexp"
	"strings"
)

// DefaultTitle names the outputs of a summary without a bold title.
const DefaultTitle = "summary_report"

var (
	// preambleRe matches a chatty first line such as "Here is the summary:".
	preambleRe = regexp.MustCompile(`(?i)^(here(?:'s| is| are)|sure|certainly|okay|of course|below (?:is|are))\b.*(summary|report).*:\s*$`)

	// closingRe matches the first trailing offer of further help.
	closingRe = regexp.MustCompile(`(?i)\n+\s*(do you want me to|would you like me to|let me know if|please note|if you need more)`)

	titleRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	unsafeTitleRe = regexp.MustCompile(`[\\/:"*?<>|]+`)
)

// Clean strips model chatter around the report: a leading preamble line and
// everything from a trailing offer of further help onward.
func Clean(text string) string {
	text = strings.TrimSpace(text)

	first, rest, _ := strings.Cut(text, "\n")
	if preambleRe.MatchString(strings.TrimSpace(first)) {
		text = strings.TrimSpace(rest)
	}

	if loc := closingRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.TrimSpace(text)
}

// Title derives an output file name from the first bold span of a summary,
// with characters that are unsafe in file names removed.
func Title(summary string) string {
	m := titleRe.FindStringSubmatch(summary)
	if m == nil {
		return DefaultTitle
	}
	title := strings.TrimSpace(unsafeTitleRe.ReplaceAllString(m[1], ""))
	if title == "" {
		return DefaultTitle
	}
	return title
}
