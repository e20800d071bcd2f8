// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StripControl removes control and format characters except tab, newline and
// carriage return, and replaces invalid UTF-8. Surrounding whitespace is kept.
func StripControl(s string) string {
	clean := true
	for _, r := range s {
		if dropRune(r) {
			clean = false
			break
		}
	}
	if clean && utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToValidUTF8(s, "\uFFFD") {
		if !dropRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripControlMap applies StripControl to every value. Keys are left alone
// because they are matched against question ids.
func StripControlMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = StripControl(v)
	}
	return out
}

func dropRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	// Cf covers zero-width and bidi overrides.
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
