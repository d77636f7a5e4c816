package util

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Slugify normalizes free text into a file-name-safe slug: non-word
// characters stripped, runs of whitespace collapsed to a single underscore,
// lowercased.
func Slugify(text string) string {
	s := nonWordRe.ReplaceAllString(text, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.ToLower(s)
}

// CleanText collapses whitespace runs (including non-breaking spaces) into
// single spaces and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
