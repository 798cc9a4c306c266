package lexicon

import "strings"

// stopwords are tokens that carry no discriminating power in a product
// query: measurement units, connectives and generic packaging nouns.
var stopwords = map[string]struct{}{
	// units
	"mg": {}, "mcg": {}, "ml": {}, "gr": {}, "ui": {}, "un": {}, "und": {},
	// connectives
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {}, "em": {}, "na": {},
	"no": {}, "nas": {}, "nos": {}, "com": {}, "para": {}, "por": {}, "sem": {},
	// generic packaging nouns
	"caixa": {}, "frasco": {}, "embalagem": {}, "cartela": {}, "blister": {},
	"tubo": {}, "bisnaga": {}, "envelope": {}, "unidade": {}, "unidades": {},
}

// IsStopword reports whether the token should be ignored during
// tokenization and during the classification heuristics.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// prepositions stripped from the residual text after the form phrase is
// removed ("xarope de dipirona" -> form "xarope", residual "dipirona").
var prepositions = map[string]struct{}{
	"em": {}, "de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"na": {}, "no": {}, "nas": {}, "nos": {}, "com": {}, "para": {}, "por": {},
}

// StripPrepositions removes leftover connectives from the residual text and
// collapses whitespace.
func StripPrepositions(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, ok := prepositions[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
