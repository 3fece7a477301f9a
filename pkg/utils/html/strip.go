// ABOUTME: HTML utilities for stripping tags and normalising plain text
// ABOUTME: Transformer output is plain text; markup is only stripped when real elements are present

package html

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	spaceRun     = regexp.MustCompile(`[ \t]{2,}`)

	// elementTag matches a closing tag or a line break tag. A lone "<b then b>"
	// in prose has neither, so it is not treated as markup.
	elementTag = regexp.MustCompile(`(?i)</[a-z][a-z0-9]*\s*>|<br\s*/?>`)
)

// ContainsMarkup reports whether s holds real HTML elements
func ContainsMarkup(s string) bool {
	return elementTag.MatchString(s)
}

// StripHTML removes all markup from s and decodes entities.
// Line breaks are kept so paragraph boundaries survive.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return DecodeEntities(strictPolicy.Sanitize(s))
}

// StripMarkup returns s unchanged unless it contains HTML elements, in which
// case the markup is removed. Plain text keeps its angle brackets and entities.
func StripMarkup(s string) string {
	if !ContainsMarkup(s) {
		return s
	}
	return StripHTML(s)
}

// DecodeEntities decodes named and numeric HTML entities
func DecodeEntities(text string) string {
	return stdhtml.UnescapeString(text)
}

// NormalizeText normalises line endings and collapses runs of spaces.
// The text itself is not interpreted as HTML.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
