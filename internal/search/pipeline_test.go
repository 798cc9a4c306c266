package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/classify"
	"github.com/UnicoContato/alpha7-IA-view/internal/clarify"
	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
	"github.com/UnicoContato/alpha7-IA-view/internal/rerank"
)

type fakeCatalog struct {
	ingredientRes  catalog.IngredientSearchResult
	ingredientErr  error
	expandedRes    catalog.IngredientSearchResult
	descriptionRes []catalog.Product
	descriptionErr error

	gotIngredientText string
	gotFormVariants   []string
	gotTokens         []string
	gotPhrase         string
	gotExpansionIDs   []int64
	gotStoreID        int64
}

func (f *fakeCatalog) SearchByIngredient(ctx context.Context, ingredientText string, formVariants []string) (catalog.IngredientSearchResult, error) {
	f.gotIngredientText = ingredientText
	f.gotFormVariants = formVariants
	return f.ingredientRes, f.ingredientErr
}

func (f *fakeCatalog) SearchByIngredientIDs(ctx context.Context, ids []int64, formVariants []string) (catalog.IngredientSearchResult, error) {
	f.gotExpansionIDs = ids
	return f.expandedRes, nil
}

func (f *fakeCatalog) SearchByDescription(ctx context.Context, tokens []string, phrase string) ([]catalog.Product, error) {
	f.gotTokens = tokens
	f.gotPhrase = phrase
	return f.descriptionRes, f.descriptionErr
}

func (f *fakeCatalog) FilterInStock(ctx context.Context, products []catalog.Product, storeID int64) ([]catalog.Product, error) {
	f.gotStoreID = storeID
	for i := range products {
		products[i].Stock = 10
	}
	return products, nil
}

type noClassifications struct{}

func (noClassifications) ManualClassifications(ctx context.Context, productIDs []int64, tenantID string) ([]catalog.ClassificationRow, error) {
	return nil, nil
}

func (noClassifications) InferClassificationsByName(ctx context.Context, productIDs []int64) ([]catalog.ClassificationRow, error) {
	return nil, nil
}

func newTestEngine(store Catalog, reranker rerank.Reranker) *Engine {
	resolver := classify.NewResolver(noClassifications{}, classify.DefaultConfig(), slog.Default())
	return NewEngine(store, lexicon.Default(), resolver, reranker, slog.Default())
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query", func(t *testing.T) {
		e := newTestEngine(&fakeCatalog{}, nil)
		_, err := e.Resolve(ctx, Request{Query: "   "})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("form is extracted and the residual feeds the ingredient channel", func(t *testing.T) {
		store := &fakeCatalog{}
		e := newTestEngine(store, nil)

		resp, err := e.Resolve(ctx, Request{Query: "Xarope de Dipirona", StoreID: 1})
		require.NoError(t, err)
		assert.Equal(t, "xarope", resp.Form)
		assert.Equal(t, "dipirona", store.gotIngredientText)
		assert.Contains(t, store.gotFormVariants, "xpe")
		assert.Equal(t, "xarope de dipirona", store.gotPhrase)
		assert.Contains(t, store.gotTokens, "dipirona")
	})

	t.Run("channels merge with provenance", func(t *testing.T) {
		store := &fakeCatalog{
			ingredientRes: catalog.IngredientSearchResult{
				Found:    true,
				Method:   catalog.MethodIngredient,
				Products: []catalog.Product{{ID: 1, PackageID: 10, Description: "Dipirona 500mg"}},
			},
			descriptionRes: []catalog.Product{
				{ID: 1, PackageID: 10, Description: "Dipirona 500mg", Score: 110},
				{ID: 2, PackageID: 20, Description: "Dipirona 1g", Score: 10},
			},
		}
		e := newTestEngine(store, nil)

		resp, err := e.Resolve(ctx, Request{Query: "dipirona", StoreID: 7})
		require.NoError(t, err)
		assert.Equal(t, int64(7), store.gotStoreID)
		assert.Equal(t, []string{catalog.MethodIngredient, catalog.MethodDescription}, resp.MethodsUsed)

		require.Len(t, resp.Candidates, 2)
		assert.Equal(t, catalog.OriginBoth, resp.Candidates[0].Origin)
		assert.Equal(t, catalog.OriginDescription, resp.Candidates[1].Origin)
	})

	t.Run("row-less personal care products stay unclassified", func(t *testing.T) {
		store := &fakeCatalog{
			descriptionRes: []catalog.Product{
				{ID: 1, PackageID: 10, Description: "Esmalte Vermelho Intenso", Score: 20},
				{ID: 2, PackageID: 20, Description: "Esmalte Rosa Claro", Score: 10},
			},
		}
		e := newTestEngine(store, nil)

		resp, err := e.Resolve(ctx, Request{Query: "esmalte", StoreID: 1})
		require.NoError(t, err)
		require.Len(t, resp.Candidates, 2)
		assert.Equal(t, "", resp.Candidates[0].Classification)
		assert.Equal(t, "", resp.Candidates[1].Classification)
		assert.Equal(t, "SC4_PERFUMARIA", resp.Message.ScenarioID)
	})

	t.Run("description ingredients trigger expansion", func(t *testing.T) {
		store := &fakeCatalog{
			descriptionRes: []catalog.Product{
				{ID: 2, PackageID: 20, Description: "Novalgina 500mg", IngredientID: 42, Score: 110},
			},
			expandedRes: catalog.IngredientSearchResult{
				Found:  true,
				Method: catalog.MethodIngredientExpanded,
				Products: []catalog.Product{
					{ID: 3, PackageID: 30, Description: "Dipirona 500mg EMS", IngredientID: 42},
				},
			},
		}
		e := newTestEngine(store, nil)

		resp, err := e.Resolve(ctx, Request{Query: "novalgina", StoreID: 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{42}, store.gotExpansionIDs)
		assert.Contains(t, resp.MethodsUsed, catalog.MethodIngredientExpanded)
		assert.Len(t, resp.Candidates, 2)
	})

	t.Run("channel failure fails the request", func(t *testing.T) {
		store := &fakeCatalog{descriptionErr: errors.New("connection refused")}
		e := newTestEngine(store, nil)

		_, err := e.Resolve(ctx, Request{Query: "dipirona"})
		assert.Error(t, err)
	})

	t.Run("clarification suppresses reranking", func(t *testing.T) {
		store := &fakeCatalog{
			descriptionRes: []catalog.Product{
				{ID: 1, PackageID: 10, Description: "Dipirona 500mg", Score: 110},
				{ID: 2, PackageID: 20, Description: "Dipirona 1g", Score: 110},
			},
		}
		reranker := &recordingReranker{}
		e := newTestEngine(store, reranker)

		resp, err := e.Resolve(ctx, Request{Query: "dipirona"})
		require.NoError(t, err)
		assert.True(t, resp.Clarification.Needed)
		assert.Equal(t, clarify.TypeConcentration, resp.Clarification.Type)
		assert.False(t, resp.Reranked)
		assert.Equal(t, 0, reranker.calls)
	})

	t.Run("unambiguous results are reranked", func(t *testing.T) {
		store := &fakeCatalog{
			descriptionRes: []catalog.Product{
				{ID: 1, PackageID: 10, Description: "Dipirona 500mg EMS", Score: 110},
				{ID: 2, PackageID: 20, Description: "Dipirona 500mg Neo", Score: 110},
			},
		}
		reranker := &recordingReranker{indices: []int{1, 0}}
		e := newTestEngine(store, reranker)

		resp, err := e.Resolve(ctx, Request{Query: "dipirona 500mg"})
		require.NoError(t, err)
		assert.True(t, resp.Reranked)
		assert.Equal(t, int64(2), resp.Candidates[0].ID)
	})

	t.Run("always carries an attendant message", func(t *testing.T) {
		e := newTestEngine(&fakeCatalog{}, nil)
		resp, err := e.Resolve(ctx, Request{Query: "produto inexistente"})
		require.NoError(t, err)
		assert.Equal(t, "SEM_RESULTADO", resp.Message.ScenarioID)
	})
}

type recordingReranker struct {
	indices []int
	calls   int
}

func (r *recordingReranker) Rank(ctx context.Context, query string, items []rerank.Summary) ([]int, error) {
	r.calls++
	return r.indices, nil
}
