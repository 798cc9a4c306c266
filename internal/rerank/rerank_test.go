package rerank

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
)

type fakeReranker struct {
	indices []int
	err     error

	gotQuery string
	gotItems []Summary
}

func (f *fakeReranker) Rank(ctx context.Context, query string, items []Summary) ([]int, error) {
	f.gotQuery = query
	f.gotItems = items
	return f.indices, f.err
}

func testProducts(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = catalog.Product{ID: int64(i + 1), Score: (n - i) * 10}
	}
	return out
}

func TestFuse(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("nil reranker keeps baseline", func(t *testing.T) {
		in := testProducts(3)
		got, reranked := Fuse(ctx, nil, "dipirona", in, logger)
		assert.False(t, reranked)
		assert.Equal(t, in, got)
	})

	t.Run("single candidate is never submitted", func(t *testing.T) {
		f := &fakeReranker{indices: []int{0}}
		_, reranked := Fuse(ctx, f, "dipirona", testProducts(1), logger)
		assert.False(t, reranked)
		assert.Nil(t, f.gotItems)
	})

	t.Run("valid permutation reorders and scores by position", func(t *testing.T) {
		f := &fakeReranker{indices: []int{2, 0, 1}}
		got, reranked := Fuse(ctx, f, "dipirona", testProducts(3), logger)

		require.True(t, reranked)
		require.Len(t, got, 3)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, int64(1), got[1].ID)
		assert.Equal(t, int64(2), got[2].ID)
		assert.Equal(t, 3, got[0].FinalScore)
		assert.Equal(t, 2, got[1].FinalScore)
		assert.Equal(t, 1, got[2].FinalScore)
	})

	t.Run("reranker error keeps baseline", func(t *testing.T) {
		f := &fakeReranker{err: errors.New("timeout")}
		in := testProducts(3)
		got, reranked := Fuse(ctx, f, "dipirona", in, logger)
		assert.False(t, reranked)
		assert.Equal(t, in, got)
	})

	t.Run("duplicate index keeps baseline", func(t *testing.T) {
		f := &fakeReranker{indices: []int{0, 0, 1}}
		in := testProducts(3)
		got, reranked := Fuse(ctx, f, "dipirona", in, logger)
		assert.False(t, reranked)
		assert.Equal(t, in, got)
	})

	t.Run("out of range index keeps baseline", func(t *testing.T) {
		f := &fakeReranker{indices: []int{0, 1, 3}}
		_, reranked := Fuse(ctx, f, "dipirona", testProducts(3), logger)
		assert.False(t, reranked)
	})

	t.Run("wrong count keeps baseline", func(t *testing.T) {
		f := &fakeReranker{indices: []int{0, 1}}
		_, reranked := Fuse(ctx, f, "dipirona", testProducts(3), logger)
		assert.False(t, reranked)
	})

	t.Run("only the first fifty are submitted, rest appended unscored", func(t *testing.T) {
		indices := make([]int, 50)
		for i := range indices {
			indices[i] = 49 - i
		}
		f := &fakeReranker{indices: indices}

		got, reranked := Fuse(ctx, f, "dipirona", testProducts(60), logger)
		require.True(t, reranked)
		require.Len(t, got, 60)
		assert.Len(t, f.gotItems, 50)

		assert.Equal(t, int64(50), got[0].ID)
		assert.Equal(t, 50, got[0].FinalScore)
		assert.Equal(t, int64(51), got[50].ID)
		assert.Equal(t, 0, got[50].FinalScore)
	})
}

func TestParseIndices(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		got, err := parseIndices("[2, 0, 1]")
		require.NoError(t, err)
		assert.Equal(t, []int{2, 0, 1}, got)
	})

	t.Run("code fenced array", func(t *testing.T) {
		got, err := parseIndices("```json\n[1, 0]\n```")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0}, got)
	})

	t.Run("array surrounded by prose", func(t *testing.T) {
		got, err := parseIndices("Aqui esta a ordem: [0, 2, 1] conforme pedido.")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 1}, got)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := parseIndices("nao consegui ordenar")
		assert.Error(t, err)
	})
}
