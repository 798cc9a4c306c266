package search

import (
	"strings"

	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
)

// Tokens splits an already normalized query into search tokens: fields of
// length two or more that are not pure digits and not stopwords, deduplicated
// in first-occurrence order. Pure digits are dropped because a bare "500"
// matches half the catalog; "500mg" survives as one token.
func Tokens(normalized string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, f := range strings.Fields(normalized) {
		if len(f) <= 1 || isDigits(f) || lexicon.IsStopword(f) {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Expand widens the token list with one level of synonym expansion. Every
// input token is kept; tokens with a synonym entry additionally contribute
// the entry's canonical term and variants. Order follows the input, with
// expansions inserted after their source token.
func Expand(tokens []string, lex *lexicon.Lexicon) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, t := range tokens {
		add(t)
		for _, e := range lex.ExpandToken(t) {
			add(e)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
