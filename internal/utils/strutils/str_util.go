package strutils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToTitleCase returns the string with the first letter of each word capitalized.
// e.g. "block sizes" → "Block Sizes"
func ToTitleCase(s string) string {
	// Create a Unicode-aware title caser
	caser := cases.Title(language.English)

	// Apply title casing to lowercase string
	return caser.String(strings.ToLower(s))
}
