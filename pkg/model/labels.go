package model

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DisplayLabel resolves the human-readable name for a field, used by the
// aggregate error summary. Preference order: associated label, placeholder,
// accessible name, then a humanized form of the raw field name.
func (f *Field) DisplayLabel() string {
	if f == nil {
		return ""
	}
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	if placeholder := strings.TrimSpace(f.Placeholder); placeholder != "" {
		return placeholder
	}
	if accessible := strings.TrimSpace(f.AccessibleName); accessible != "" {
		return accessible
	}
	return Humanize(f.Name)
}

// Humanize converts a field name into a human-friendly label. It splits on
// underscores/dashes and camelCase boundaries.
func Humanize(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev, _ := utf8.DecodeLastRuneInString(input[:index])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
