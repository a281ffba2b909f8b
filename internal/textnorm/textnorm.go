// Package textnorm folds transaction descriptions into the canonical compare
// key used by every keyword heuristic: lowercased, with diacritics stripped,
// so "Aplicação" and "aplicacao" match the same rule.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks. NFC recomposition
// keeps unrelated precomposed characters stable under repeated application.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical compare key for a piece of statement text.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		// Transformation over valid UTF-8 cannot fail; fall back to the
		// lowercased input for anything malformed.
		return strings.ToLower(s)
	}
	return folded
}

// Key builds the compare key for a transaction's description and memo,
// joined with a single space the way every downstream heuristic expects.
func Key(description, memo string) string {
	return Normalize(description + " " + memo)
}

// HasKeyword reports whether the normalized text contains any of the keywords.
// Keywords are assumed to already be in normalized form.
func HasKeyword(normalized string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
