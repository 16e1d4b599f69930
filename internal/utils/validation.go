package utils

import (
	"strings"
	"unicode"
)

// DefaultDisplayName replaces a blank profile name
const DefaultDisplayName = "Seeker"

// MaxDisplayNameLength caps a stored name, in characters
const MaxDisplayNameLength = 64

// NormalizeDisplayName trims the submitted name, drops control characters
// and caps its length. A name that ends up blank becomes DefaultDisplayName.
func NormalizeDisplayName(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	cleaned = strings.TrimSpace(cleaned)

	if runes := []rune(cleaned); len(runes) > MaxDisplayNameLength {
		cleaned = strings.TrimSpace(string(runes[:MaxDisplayNameLength]))
	}
	if cleaned == "" {
		return DefaultDisplayName
	}
	return cleaned
}
