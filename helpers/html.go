// Package helpers holds small text utilities shared by the source
// extractors and the vocabulary resolver.
package helpers

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	htmlCommentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)

	// Block-level closings become line breaks so words on either side
	// do not run together.
	brTagRegex    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndRegex = regexp.MustCompile(`(?i)</(?:p|div|li|h[1-6]|blockquote|tr)>`)
)

// StripHTML removes markup from a museum description, decodes entities
// (&eacute;, &nbsp;, ...) and collapses whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	s = htmlCommentRegex.ReplaceAllString(s, "")
	s = blockEndRegex.ReplaceAllString(s, " ")
	s = brTagRegex.ReplaceAllString(s, " ")
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	return NormalizeWhitespace(s)
}

// NormalizeWhitespace collapses all runs of whitespace, including
// non-breaking spaces, to single spaces and trims.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
