// Package clarify decides whether a query is too ambiguous to answer: when
// the retrieved candidates disagree on an attribute (concentration,
// pharmaceutical form, presentation) that the query did not pin down, the
// engine asks a follow-up question instead of returning a ranked list.
package clarify

import (
	"regexp"
	"sort"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
	"github.com/UnicoContato/alpha7-IA-view/internal/text"
)

// Clarification categories. The string values are part of the API contract.
const (
	TypeConcentration = "concentracao"
	TypeForm          = "forma_farmaceutica"
	TypePresentation  = "apresentacao"
)

const maxOptions = 5

var (
	concentrationRe = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s?(?:mg|mcg|g|ui)(?:\s*/\s*(?:\d+(?:[.,]\d+)?\s*)?(?:ml|g|ui))?`)
	volumeRe        = regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s?(?:ml|g)\b`)
	quantityRe      = regexp.MustCompile(`(?i)\b\d+\s?(?:cp|cps|comp|comprimidos?|caps|capsulas?|drg|drageas?)\b`)
)

// Result is the outcome of the ambiguity analysis. Needed=false means the
// query is resolvable as-is.
type Result struct {
	Needed   bool
	Type     string
	Question string
	Options  []string
}

// Attributes are the normalized attribute values parsed from one
// description.
type Attributes struct {
	Concentrations []string
	Forms          []string
	Presentations  []string
}

type formToken struct {
	re        *regexp.Regexp
	canonical string
}

// Analyzer extracts attributes and decides on clarification. Build one per
// process from the forms lexicon.
type Analyzer struct {
	formTokens []formToken
}

// NewAnalyzer compiles the form lookup from the forms dictionary. Both the
// canonical names and every variant become matchable tokens.
func NewAnalyzer(forms []lexicon.Entry) *Analyzer {
	a := &Analyzer{}
	seen := make(map[string]struct{})
	add := func(token, canonical string) {
		token = text.Normalize(token)
		if len(token) <= 1 {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		a.formTokens = append(a.formTokens, formToken{
			re:        regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(token) + `(\s|$)`),
			canonical: text.NormalizeUpper(text.Normalize(canonical)),
		})
	}
	for _, e := range forms {
		add(e.Canonical, e.Canonical)
		for _, v := range e.Variants {
			add(v, e.Canonical)
		}
	}
	return a
}

// Extract parses the three attribute families from a description or query.
func (a *Analyzer) Extract(s string) Attributes {
	volumes := extractMatches(s, volumeRe)
	quantities := extractMatches(s, quantityRe)
	return Attributes{
		Concentrations: extractMatches(s, concentrationRe),
		Forms:          a.extractForms(s),
		Presentations:  uniqueStrings(append(volumes, quantities...)),
	}
}

// extractForms returns every canonical form whose token appears whole-word
// in the text. Unlike the query's form extractor this is not first-match:
// a description can carry several forms.
func (a *Analyzer) extractForms(s string) []string {
	normalized := text.Normalize(s)
	if normalized == "" {
		return nil
	}
	var forms []string
	seen := make(map[string]struct{})
	for _, ft := range a.formTokens {
		if !ft.re.MatchString(normalized) {
			continue
		}
		if _, ok := seen[ft.canonical]; ok {
			continue
		}
		seen[ft.canonical] = struct{}{}
		forms = append(forms, ft.canonical)
	}
	return forms
}

// Analyze inspects the candidate set for unresolved attribute variance. The
// families are checked in fixed priority order; the first that triggers
// wins. A family the query already specifies never triggers.
func (a *Analyzer) Analyze(query string, products []catalog.Product) Result {
	if len(products) < 2 {
		return Result{}
	}

	queryAttrs := a.Extract(query)

	attrs := make([]Attributes, len(products))
	for i, p := range products {
		attrs[i] = a.Extract(p.Description)
	}

	concentrations := rankValues(attrs, func(x Attributes) []string { return x.Concentrations })
	forms := rankValues(attrs, func(x Attributes) []string { return x.Forms })
	presentations := rankValues(attrs, func(x Attributes) []string { return x.Presentations })

	if len(concentrations) > 1 && len(queryAttrs.Concentrations) == 0 {
		return Result{
			Needed:   true,
			Type:     TypeConcentration,
			Question: "Encontrei mais de uma concentracao. Qual voce procura?",
			Options:  capOptions(concentrations),
		}
	}
	if len(forms) > 1 && len(queryAttrs.Forms) == 0 {
		return Result{
			Needed:   true,
			Type:     TypeForm,
			Question: "Encontrei mais de uma forma farmaceutica. Qual voce prefere?",
			Options:  capOptions(forms),
		}
	}
	if len(presentations) > 1 && len(queryAttrs.Presentations) == 0 {
		return Result{
			Needed:   true,
			Type:     TypePresentation,
			Question: "Encontrei mais de uma apresentacao (volume/quantidade). Qual voce prefere?",
			Options:  capOptions(presentations),
		}
	}
	return Result{}
}

// rankValues counts how many candidates carry each distinct value and
// returns the values ordered by frequency descending, then alphabetically.
func rankValues(attrs []Attributes, selector func(Attributes) []string) []string {
	counts := make(map[string]int)
	for _, a := range attrs {
		for _, v := range selector(a) {
			counts[v]++
		}
	}
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	return values
}

func capOptions(values []string) []string {
	if len(values) > maxOptions {
		return values[:maxOptions]
	}
	return values
}

func extractMatches(s string, re *regexp.Regexp) []string {
	matches := re.FindAllString(s, -1)
	normalized := make([]string, 0, len(matches))
	for _, m := range matches {
		if v := text.NormalizeUpper(m); v != "" {
			normalized = append(normalized, v)
		}
	}
	return uniqueStrings(normalized)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
