// Package classify assigns each retrieved product a canonical commercial
// classification (reference brand, generic, similar) through a cascade of
// strategies: tenant-scoped manual mapping, name inference over the
// discovered classification table, and a lexical heuristic over the active
// ingredient. Classification is a display and ranking hint, not a
// pharmacological claim.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
	"github.com/UnicoContato/alpha7-IA-view/internal/text"
)

// Canonical classification types. The string values are part of the API
// contract.
const (
	TypeReference = "REFERENCIA"
	TypeGeneric   = "GENERICO"
	TypeSimilar   = "SIMILAR"
	TypeUnknown   = "DESCONHECIDO"
)

// priority orders canonical types when one product carries conflicting
// classification rows. Higher wins; ties keep the first-seen row.
var priority = map[string]int{
	TypeReference: 3,
	TypeGeneric:   2,
	TypeSimilar:   1,
	TypeUnknown:   0,
}

// Store is the subset of catalog lookups the resolver needs.
type Store interface {
	ManualClassifications(ctx context.Context, productIDs []int64, tenantID string) ([]catalog.ClassificationRow, error)
	InferClassificationsByName(ctx context.Context, productIDs []int64) ([]catalog.ClassificationRow, error)
}

// Config is the tunable policy data of the resolver.
type Config struct {
	// AdministrativeTerms mark raw classification labels that describe
	// regulatory or commercial handling rather than market position.
	AdministrativeTerms []string
	// MarketTerms mark labels that do describe market position; a label
	// containing one of these is never treated as administrative.
	MarketTerms []string
	// MinTokenLength is the minimum length of an ingredient token the
	// heuristic considers significant.
	MinTokenLength int
	// TokenOverlap is how many ingredient tokens must appear in the
	// description for the heuristic to call a product generic (capped at
	// the ingredient's token count).
	TokenOverlap int
}

// DefaultConfig returns the policy shipped with the engine.
func DefaultConfig() Config {
	return Config{
		AdministrativeTerms: []string{
			"otc", "isento", "controlado", "controle especial",
			"tarja", "promocao", "promocional", "campanha", "destaque",
		},
		MarketTerms:    []string{"gener", "simil", "refer", "marca", "etic"},
		MinTokenLength: 4,
		TokenOverlap:   2,
	}
}

// Resolver resolves canonical classifications for retrieved products.
type Resolver struct {
	store  Store
	cfg    Config
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil logger falls back to slog.Default().
func NewResolver(store Store, cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, cfg: cfg, logger: logger}
}

// Canonical normalizes a raw type string to one of the canonical constants,
// or "" when it is not recognized.
func Canonical(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case TypeReference:
		return TypeReference
	case TypeGeneric:
		return TypeGeneric
	case TypeSimilar:
		return TypeSimilar
	}
	return ""
}

// Enrich resolves a classification for every product in place and returns
// the slice. The cascade tries the manual tenant mapping first, then name
// inference, then the ingredient heuristic; each step runs only when the
// previous produced nothing usable.
func (r *Resolver) Enrich(ctx context.Context, products []catalog.Product, tenantID string) ([]catalog.Product, error) {
	if len(products) == 0 {
		return products, nil
	}

	ids := uniqueProductIDs(products)

	best := make(map[int64]catalog.ClassificationRow, len(ids))

	rows, err := r.store.ManualClassifications(ctx, ids, tenantID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		keepBest(best, row)
	}

	if len(best) == 0 {
		inferred, err := r.store.InferClassificationsByName(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, row := range inferred {
			keepBest(best, row)
		}
	}

	resolved := 0
	for i := range products {
		p := &products[i]
		row, ok := best[p.ID]
		if ok {
			p.ClassificationID = row.ClassificationID
			p.ClassificationName = row.ClassificationName
			p.Classification = Canonical(row.Canonical)
		}

		if r.needsHeuristic(p) {
			p.Classification = r.heuristicType(p)
		} else if ok && p.Classification == "" {
			// A source row that maps to nothing is DESCONHECIDO; a
			// product with no rows at all stays unclassified.
			p.Classification = TypeUnknown
		}
		if p.Classification != "" && p.Classification != TypeUnknown {
			resolved++
		}
	}

	r.logger.Info("classification resolved", "products", len(products), "resolved", resolved)
	return products, nil
}

// needsHeuristic reports whether the heuristic step should run for p: the
// cascade produced nothing (or an administrative label), and the product has
// a known active ingredient to reason about.
func (r *Resolver) needsHeuristic(p *catalog.Product) bool {
	if p.IngredientName == "" {
		return false
	}
	if p.Classification == "" {
		return true
	}
	return r.isAdministrativeLabel(p.ClassificationName)
}

// isAdministrativeLabel judges whether a raw classification label describes
// regulatory handling (OTC, controlled, promotional) instead of market
// position.
func (r *Resolver) isAdministrativeLabel(label string) bool {
	if label == "" {
		return false
	}
	normalized := text.Normalize(label)
	for _, term := range r.cfg.MarketTerms {
		if strings.Contains(normalized, term) {
			return false
		}
	}
	for _, term := range r.cfg.AdministrativeTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}

// heuristicType decides generic versus reference from the overlap between
// the ingredient name and the product description. Generic products are
// usually named after their ingredient; branded ones are not.
func (r *Resolver) heuristicType(p *catalog.Product) string {
	tokens := significantTokens(p.IngredientName, r.cfg.MinTokenLength)
	if len(tokens) == 0 {
		return TypeReference
	}

	description := text.Normalize(p.Description)
	if strings.HasPrefix(description, tokens[0]) {
		return TypeGeneric
	}

	needed := r.cfg.TokenOverlap
	if len(tokens) < needed {
		needed = len(tokens)
	}
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(description, tok) {
			matched++
			if matched >= needed {
				return TypeGeneric
			}
		}
	}
	return TypeReference
}

// significantTokens extracts the ingredient-name tokens long enough to be
// discriminating, skipping stopwords.
func significantTokens(name string, minLen int) []string {
	var tokens []string
	for _, tok := range strings.Fields(text.Normalize(name)) {
		if len(tok) < minLen || lexicon.IsStopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func keepBest(best map[int64]catalog.ClassificationRow, row catalog.ClassificationRow) {
	canonical := Canonical(row.Canonical)
	if canonical == "" {
		canonical = TypeUnknown
	}
	row.Canonical = canonical

	existing, ok := best[row.ProductID]
	if !ok {
		best[row.ProductID] = row
		return
	}
	if priority[canonical] > priority[existing.Canonical] {
		best[row.ProductID] = row
	}
}

func uniqueProductIDs(products []catalog.Product) []int64 {
	seen := make(map[int64]struct{}, len(products))
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids
}
