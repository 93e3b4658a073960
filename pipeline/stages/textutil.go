package stages

import (
	"strings"
	"unicode"
)

// containsWord reports whether word occurs in s delimited by non-letter,
// non-digit runes. Go's regexp word boundary is ASCII-only, so Cyrillic
// needs an explicit check.
func containsWord(s, word string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], word)
		if i < 0 {
			return false
		}
		i += start
		before := ' '
		if i > 0 {
			rs := []rune(s[:i])
			before = rs[len(rs)-1]
		}
		after := ' '
		if end := i + len(word); end < len(s) {
			after = []rune(s[end:])[0]
		}
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		start = i + len(word)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitParts splits a compound field on commas, trimming whitespace and
// dropping empty parts.
func splitParts(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
