// Package sanitize strips invisible Unicode from clipboard text: zero-width
// characters, BiDi controls and C0/C1 control bytes that can smuggle hidden
// content through a paste.
package sanitize

import "strings"

// hidden reports whether r is an invisible or control rune that must not
// survive a copy. Tab, newline and carriage return stay.
func hidden(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	switch {
	case r < 0x20, r == 0x7f:
		return true
	case r >= 0x200b && r <= 0x200f: // zero-width space/joiner, marks
		return true
	case r >= 0x202a && r <= 0x202e: // BiDi embedding/override
		return true
	case r >= 0x2060 && r <= 0x2064: // word joiner, invisible operators
		return true
	case r >= 0x2066 && r <= 0x2069: // BiDi isolates
		return true
	case r == 0xfeff, r == 0xfffc, r == 0xfffd:
		return true
	}
	return false
}

// Scrub removes hidden runes and returns the cleaned text with the number
// of runes removed.
func Scrub(s string) (string, int) {
	removed := 0
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if hidden(r) {
			removed++
			continue
		}
		b.WriteRune(r)
	}
	if removed == 0 {
		return s, 0
	}
	return b.String(), removed
}
