// Package textutil normalizes raw feed text before it enters the pipeline.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Clean decodes HTML entities, strips markup and collapses whitespace.
// Empty input stays empty; the result is stable under repeated cleaning.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
