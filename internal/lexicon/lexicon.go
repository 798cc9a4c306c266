// Package lexicon holds the controlled vocabularies used by the search
// pipeline: pharmaceutical forms, term abbreviations and stopwords. The
// tables are declared as ordered lists because lookup is first-match-wins
// over declaration order; a map would make that order non-deterministic.
package lexicon

// Entry maps a canonical term to its surface variants (abbreviations,
// plurals, foreign spellings). Variants are stored pre-normalized.
type Entry struct {
	Canonical string
	Variants  []string
}

// Lexicon bundles the static vocabularies. Build it once at startup and pass
// it into the tokenizer and the form extractor; it is read-only afterwards.
type Lexicon struct {
	Forms    []Entry
	Synonyms []Entry
}

// Default returns the built-in vocabularies.
func Default() *Lexicon {
	return &Lexicon{
		Forms:    PharmaceuticalForms(),
		Synonyms: ProductSynonyms(),
	}
}

// ExpandToken returns the canonical term plus all variants of the first
// synonym entry that lists token (as canonical or as variant). It returns nil
// when no entry matches. Expansion is a single level: returned variants are
// not expanded again.
func (l *Lexicon) ExpandToken(token string) []string {
	for _, e := range l.Synonyms {
		if e.Canonical == token {
			return append([]string{e.Canonical}, e.Variants...)
		}
		for _, v := range e.Variants {
			if v == token {
				return append([]string{e.Canonical}, e.Variants...)
			}
		}
	}
	return nil
}
