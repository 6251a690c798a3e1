package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Compose chains transforms left to right.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(v T) T {
		for _, f := range transforms {
			v = f(v)
		}
		return v
	}
}

func Trim(s string) string { return strings.TrimSpace(s) }

// MaxLength cuts s after n runes.
func MaxLength(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// SingleLine folds every whitespace run, newlines included, into one space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RemoveControlChars keeps \n, \r and \t. Invalid UTF-8 bytes are dropped.
func RemoveControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case r == utf8.RuneError && size == 1:
		case r == '\n', r == '\r', r == '\t', !unicode.IsControl(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Excerpt is the first n runes of the visible text in an HTML fragment.
func Excerpt(content string, n int) string {
	return MaxLength(SingleLine(StripHTML(content)), n)
}
