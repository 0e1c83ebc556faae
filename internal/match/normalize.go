package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier to lower case without word separators,
// so "lastSync", "LastSync" and "last_sync" compare equal.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(Words(s), ""))
}

// SnakeCase converts an identifier to lower snake case
// ("CacheOnPutExample" -> "cache_on_put_example").
func SnakeCase(s string) string {
	return strings.ToLower(strings.Join(Words(s), "_"))
}

// Words splits an identifier at separators and case changes. An acronym
// stays one word: "HTTPTimeout" -> ["HTTP", "Timeout"].
func Words(s string) []string {
	var (
		words []string
		start = -1
	)

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}

			continue
		}

		if start >= 0 && wordBoundary(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		words = append(words, string(runes[start:]))
	}

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// wordBoundary reports whether a word starts at runes[i] (i > 0).
func wordBoundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	prev := runes[i-1]
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": the P ends the acronym.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
