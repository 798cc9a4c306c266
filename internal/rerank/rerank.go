// Package rerank combines the SQL relevance order with an optional external
// semantic reranking step. The external reranker is treated as untrusted and
// unreliable: its response must be an exact permutation of the submitted
// indices, and any violation, timeout or transport failure keeps the
// baseline order.
package rerank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
)

// maxCandidates caps how many candidates are submitted to the external
// reranker; anything beyond keeps its baseline position after the reranked
// prefix, unscored.
const maxCandidates = 50

const summaryDescriptionLimit = 150

// Summary is the compact candidate view submitted to the reranker.
type Summary struct {
	Index          int    `json:"index"`
	Description    string `json:"descricao"`
	Ingredient     string `json:"principio_ativo"`
	Classification string `json:"tipo_classificacao"`
	SQLRelevance   int    `json:"relevancia_sql"`
}

// Reranker orders candidate summaries by semantic relevance to the query.
// It must return a permutation of 0..len(items)-1.
type Reranker interface {
	Rank(ctx context.Context, query string, items []Summary) ([]int, error)
}

// Fuse applies the reranker to the first candidates (baseline order assumed)
// and reports whether reranking was applied. A nil reranker, a single
// candidate, or any reranker failure keeps the baseline order.
func Fuse(ctx context.Context, reranker Reranker, query string, products []catalog.Product, logger *slog.Logger) ([]catalog.Product, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	if reranker == nil || len(products) <= 1 {
		return products, false
	}

	n := len(products)
	if n > maxCandidates {
		n = maxCandidates
	}
	head := products[:n]
	tail := products[n:]

	items := make([]Summary, n)
	for i, p := range head {
		items[i] = Summary{
			Index:          i,
			Description:    truncate(p.Description, summaryDescriptionLimit),
			Ingredient:     p.IngredientName,
			Classification: classificationOrUnknown(p.Classification),
			SQLRelevance:   p.Score,
		}
	}

	indices, err := reranker.Rank(ctx, query, items)
	if err != nil {
		logger.Warn("reranker failed, keeping baseline order", "error", err)
		return products, false
	}
	if err := validatePermutation(indices, n); err != nil {
		logger.Warn("reranker returned invalid ordering, keeping baseline order", "error", err)
		return products, false
	}

	ordered := make([]catalog.Product, 0, len(products))
	for pos, idx := range indices {
		p := head[idx]
		// Positional relevance, not the reranker's own confidence.
		p.FinalScore = n - pos
		ordered = append(ordered, p)
	}
	for _, p := range tail {
		p.FinalScore = 0
		ordered = append(ordered, p)
	}

	logger.Info("candidates reranked", "submitted", n, "appended", len(tail))
	return ordered, true
}

// validatePermutation checks that indices is exactly a permutation of
// 0..n-1: right count, no duplicates, no out-of-range values.
func validatePermutation(indices []int, n int) error {
	if len(indices) != n {
		return fmt.Errorf("expected %d indices, got %d", n, len(indices))
	}
	seen := make([]bool, n)
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("index %d out of range [0,%d)", idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("duplicate index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}

func classificationOrUnknown(c string) string {
	if c == "" {
		return "DESCONHECIDO"
	}
	return c
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
