package service

import "regexp"

// RedactionToken replaces every matched flag span in sanitized text.
const RedactionToken = "[FLAG_BLOCKED]"

// flagPatterns are checked in order. Bracket-delimited tokens first, then
// bare digest shapes (MD5, SHA1).
var flagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)flag\{[^}]+\}`),
	regexp.MustCompile(`(?i)ctf\{[^}]+\}`),
	regexp.MustCompile(`(?i)eco\{[^}]+\}`),
	regexp.MustCompile(`(?i)[a-f0-9]{32}`),
	regexp.MustCompile(`(?i)[a-f0-9]{40}`),
}

// FlagFilter classifies and sanitizes text against the flag signatures.
// Both operations are pure and total.
type FlagFilter struct {
	patterns []*regexp.Regexp
}

func NewFlagFilter() *FlagFilter {
	return &FlagFilter{patterns: flagPatterns}
}

// Detect reports whether any flag signature matches anywhere in the text.
func (f *FlagFilter) Detect(text string) bool {
	for _, p := range f.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Sanitize replaces every matched span, for every pattern in order, with the
// redaction token. Text without matches is returned unchanged.
func (f *FlagFilter) Sanitize(text string) string {
	for _, p := range f.patterns {
		text = p.ReplaceAllString(text, RedactionToken)
	}
	return text
}
