package utils

import "unicode/utf8"

// TruncateSnippet bounds a violation snippet to max bytes without
// splitting a multi-byte rune, so Arabic and accented evidence stays
// valid UTF-8 when persisted.
func TruncateSnippet(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
