package nostril

import "strings"

// Sanitize reduces raw to the lowercase ASCII letters it contains. Digits,
// punctuation, whitespace and non-ASCII runes are dropped rather than
// replaced, so "Foo_Bar42" becomes "foobar". The result may be empty.
func Sanitize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z':
			sb.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		}
	}
	return sb.String()
}

// SanitizeString is an alias for Sanitize, kept so callers can see exactly
// what Nonsense evaluates.
func SanitizeString(text string) string {
	return Sanitize(text)
}
