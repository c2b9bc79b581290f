// Package postprocess parses structured output out of free-text answers and
// derives the filenames generated content is persisted under.
package postprocess

import (
	"regexp"
	"strings"
	"time"
)

// mermaidFence matches a fenced mermaid block. The ```mermaid / ``` marker
// pair is a wire-level contract with the backend's output format.
var mermaidFence = regexp.MustCompile("(?s)```mermaid[ \t]*\n(.*?)```")

var (
	disallowedChars = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// ExtractMermaid returns the inner text of the first fenced mermaid block in
// answer, without the fence markers. Later blocks are ignored. found is
// false when no block exists.
func ExtractMermaid(answer string) (diagram string, found bool) {
	m := mermaidFence.FindStringSubmatch(answer)
	if m == nil {
		return "", false
	}
	return strings.TrimRight(m[1], "\n"), true
}

// DeriveFilename builds a deterministic, filesystem-safe markdown filename
// from a query and a timestamp: strip everything but word characters,
// whitespace and hyphens, keep the first 30 characters, lowercase, collapse
// whitespace runs to single hyphens, and prefix YYYYMMDD_HHMMSS.
//
// The timestamp plus slug is the sole uniqueness mechanism: two queries in
// the same second whose first 30 significant characters normalize to the
// same slug collide, and the last writer wins.
func DeriveFilename(query string, now time.Time) string {
	slug := disallowedChars.ReplaceAllString(query, "")

	runes := []rune(slug)
	if len(runes) > 30 {
		slug = string(runes[:30])
	}

	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	if slug == "" {
		slug = "note"
	}

	return now.Format("20060102_150405") + "_" + slug + ".md"
}
