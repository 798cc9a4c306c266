package search

import (
	"regexp"
	"strings"

	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
)

// FormMatch is the outcome of form extraction over a normalized query.
// Canonical is empty when no pharmaceutical form was mentioned; Residual is
// the query with the form phrase and leftover connectives removed.
type FormMatch struct {
	Canonical string
	Variants  []string
	Residual  string
}

type formPattern struct {
	re       *regexp.Regexp
	entry    lexicon.Entry
	variants []string
}

// FormExtractor finds the pharmaceutical form mentioned in a query. Lookup
// is first-match-wins over the dictionary's declaration order, so more
// specific multi-word forms must be declared before their prefixes.
type FormExtractor struct {
	patterns []formPattern
}

// NewFormExtractor precompiles a whole-word pattern per dictionary phrase.
func NewFormExtractor(forms []lexicon.Entry) *FormExtractor {
	fe := &FormExtractor{patterns: make([]formPattern, 0, len(forms))}
	for _, entry := range forms {
		phrases := append([]string{entry.Canonical}, entry.Variants...)
		alts := make([]string, 0, len(phrases))
		for _, p := range phrases {
			alts = append(alts, regexp.QuoteMeta(p))
		}
		re := regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
		variants := append([]string{entry.Canonical}, entry.Variants...)
		fe.patterns = append(fe.patterns, formPattern{re: re, entry: entry, variants: variants})
	}
	return fe
}

// Extract removes the first matching form phrase from the normalized query.
// With no match it returns the query untouched as the residual.
func (fe *FormExtractor) Extract(normalized string) FormMatch {
	for _, p := range fe.patterns {
		loc := p.re.FindStringIndex(normalized)
		if loc == nil {
			continue
		}
		residual := normalized[:loc[0]] + " " + normalized[loc[1]:]
		residual = lexicon.StripPrepositions(residual)
		return FormMatch{
			Canonical: p.entry.Canonical,
			Variants:  p.variants,
			Residual:  residual,
		}
	}
	return FormMatch{Residual: normalized}
}
