package utils

import (
	"strings"
	"unicode"
)

// SanitizeString strips control characters and trims surrounding whitespace.
// Used on free-text inputs (display names, event titles) before storage.
func SanitizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

// ContainsFold reports whether substr occurs in s, ignoring case. This is
// the matching rule for the name/email search endpoints.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
