// Package text implements the lexical normalization shared by every stage of
// the search pipeline. Matching against the catalog, the lexicons and the
// clarification rules all assume input that went through Normalize.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented runes and drops the combining marks, so
// "dipirona sódica" and "dipirona sodica" normalize to the same string.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases the input, removes diacritics, replaces punctuation
// with spaces and collapses whitespace. It never fails and is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeUpper uppercases after collapsing whitespace. Used for option
// labels shown back to the user ("500MG", "1G").
func NormalizeUpper(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
