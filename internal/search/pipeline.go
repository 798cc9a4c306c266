// Package search implements the query resolution pipeline: normalization,
// form extraction, dual-channel retrieval, merge, availability filtering,
// classification, clarification analysis and reranking.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/UnicoContato/alpha7-IA-view/internal/assist"
	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/clarify"
	"github.com/UnicoContato/alpha7-IA-view/internal/classify"
	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
	"github.com/UnicoContato/alpha7-IA-view/internal/rerank"
	"github.com/UnicoContato/alpha7-IA-view/internal/text"
)

// maxExpansionIngredients caps how many distinct ingredients from the
// description channel feed the expansion lookup.
const maxExpansionIngredients = 10

// Request is one resolution call. StoreID scopes stock and prices; TenantID
// scopes the manual classification mapping.
type Request struct {
	Query    string
	StoreID  int64
	TenantID string
}

// Response is the resolved candidate set plus everything the caller needs to
// either present products or ask a clarifying question.
type Response struct {
	Query          string
	Normalized     string
	IngredientText string
	Form           string
	Candidates     []catalog.Product
	MethodsUsed    []string
	Reranked       bool
	Clarification  clarify.Result
	Message        assist.Message
}

// Catalog is the retrieval surface the pipeline needs. *catalog.Store
// implements it.
type Catalog interface {
	SearchByIngredient(ctx context.Context, ingredientText string, formVariants []string) (catalog.IngredientSearchResult, error)
	SearchByIngredientIDs(ctx context.Context, ids []int64, formVariants []string) (catalog.IngredientSearchResult, error)
	SearchByDescription(ctx context.Context, tokens []string, phrase string) ([]catalog.Product, error)
	FilterInStock(ctx context.Context, products []catalog.Product, storeID int64) ([]catalog.Product, error)
}

// Engine wires the pipeline stages together. All stages are built once and
// shared across requests.
type Engine struct {
	store    Catalog
	lexicon  *lexicon.Lexicon
	forms    *FormExtractor
	resolver *classify.Resolver
	analyzer *clarify.Analyzer
	reranker rerank.Reranker
	logger   *slog.Logger
}

// NewEngine builds the pipeline. reranker may be nil, which disables the
// semantic reranking stage.
func NewEngine(store Catalog, lex *lexicon.Lexicon, resolver *classify.Resolver, reranker rerank.Reranker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:    store,
		lexicon:  lex,
		forms:    NewFormExtractor(lex.Forms),
		resolver: resolver,
		analyzer: clarify.NewAnalyzer(lex.Forms),
		reranker: reranker,
		logger:   logger,
	}
}

// Resolve runs the full pipeline for one query.
func (e *Engine) Resolve(ctx context.Context, req Request) (*Response, error) {
	raw := strings.TrimSpace(req.Query)
	if raw == "" {
		return nil, ErrEmptyQuery
	}

	normalized := text.Normalize(raw)
	form := e.forms.Extract(normalized)
	tokens := Expand(Tokens(normalized), e.lexicon)

	e.logger.Info("resolving query",
		"query", raw,
		"normalized", normalized,
		"form", form.Canonical,
		"tokens", len(tokens),
	)

	var (
		ingredientRes  catalog.IngredientSearchResult
		descriptionRes []catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ingredientRes, err = e.store.SearchByIngredient(gctx, form.Residual, form.Variants)
		if err != nil {
			return fmt.Errorf("ingredient channel: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		descriptionRes, err = e.store.SearchByDescription(gctx, tokens, normalized)
		if err != nil {
			return fmt.Errorf("description channel: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var methods []string
	if ingredientRes.Found {
		methods = append(methods, ingredientRes.Method)
	}
	if len(descriptionRes) > 0 {
		methods = append(methods, catalog.MethodDescription)
	}

	// The description channel's ingredients seed a second ingredient lookup
	// so same-ingredient siblings join the candidates.
	ingredientProducts := ingredientRes.Products
	if ids := distinctIngredientIDs(descriptionRes, maxExpansionIngredients); len(ids) > 0 {
		expanded, err := e.store.SearchByIngredientIDs(ctx, ids, form.Variants)
		if err != nil {
			return nil, fmt.Errorf("ingredient expansion: %w", err)
		}
		if expanded.Found {
			ingredientProducts = append(ingredientProducts, expanded.Products...)
			methods = append(methods, expanded.Method)
		}
	}

	merged := Merge(ingredientProducts, descriptionRes)

	available, err := e.store.FilterInStock(ctx, merged, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("availability filter: %w", err)
	}

	classified, err := e.resolver.Enrich(ctx, available, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("classification: %w", err)
	}

	resp := &Response{
		Query:          raw,
		Normalized:     normalized,
		IngredientText: form.Residual,
		Form:           form.Canonical,
		Candidates:     classified,
		MethodsUsed:    methods,
	}

	resp.Clarification = e.analyzer.Analyze(normalized, classified)
	if !resp.Clarification.Needed {
		resp.Candidates, resp.Reranked = rerank.Fuse(ctx, e.reranker, raw, classified, e.logger)
	}

	resp.Message = assist.Generate(raw, resp.Candidates)

	e.logger.Info("query resolved",
		"candidates", len(resp.Candidates),
		"methods", strings.Join(methods, ","),
		"clarification", resp.Clarification.Needed,
		"reranked", resp.Reranked,
	)
	return resp, nil
}

func distinctIngredientIDs(products []catalog.Product, limit int) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, p := range products {
		if p.IngredientID == 0 {
			continue
		}
		if _, ok := seen[p.IngredientID]; ok {
			continue
		}
		seen[p.IngredientID] = struct{}{}
		ids = append(ids, p.IngredientID)
		if len(ids) == limit {
			break
		}
	}
	return ids
}
