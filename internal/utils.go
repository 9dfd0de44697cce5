package internal

import (
	"strings"
	"unicode"
)

// Version is the application version shown by --version and the GUI title
const Version = "0.4.0"

// rtlLanguages lists language labels written right to left
var rtlLanguages = map[string]bool{
	"persian": true,
	"farsi":   true,
	"arabic":  true,
	"hebrew":  true,
	"urdu":    true,
}

// IsRTL reports whether text in the given language label is written right to left
func IsRTL(lang string) bool {
	return rtlLanguages[strings.ToLower(strings.TrimSpace(lang))]
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit in any script
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsRTLText reports whether text starts with a right-to-left letter
func IsRTLText(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return unicode.In(r, unicode.Arabic, unicode.Hebrew)
		}
	}
	return false
}
