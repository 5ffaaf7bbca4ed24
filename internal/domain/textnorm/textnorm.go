// Package textnorm canonicalizes header and description strings for fuzzy
// comparison: accents dropped, case folded, whitespace trimmed. Both folds
// are idempotent and never fail; garbage in yields an empty string.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes the combining marks, so "Débitos"
// and "Debitos" fold to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Fold lowercases, trims and removes diacritics.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// The NFD chain cannot fail on valid UTF-8; fall back to the raw
		// string for anything else rather than erroring.
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FoldKey folds like Fold and additionally drops every rune that is not a
// letter, digit or space, collapsing interior runs of whitespace to a single
// space. Header cells like "Número Documento:" and "numero documento" meet
// on the same key.
func FoldKey(s string) string {
	folded := Fold(s)
	if folded == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}
