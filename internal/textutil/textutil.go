// Package textutil holds the small text helpers shared by the pipeline stages.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate hard-cuts s to at most limit characters. It does not look for
// word or sentence boundaries. A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// WordCount returns the number of whitespace separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// NormalizeLines trims every line, drops blank ones and joins the rest with
// a single newline. Lines of any length are kept.
func NormalizeLines(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
