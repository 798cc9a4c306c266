package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
)

func TestTokens(t *testing.T) {
	t.Run("drops stopwords and short tokens", func(t *testing.T) {
		assert.Equal(t, []string{"dipirona", "500mg"}, Tokens("dipirona de 500mg a"))
	})

	t.Run("drops pure digits", func(t *testing.T) {
		assert.Equal(t, []string{"dipirona"}, Tokens("dipirona 500"))
	})

	t.Run("deduplicates preserving order", func(t *testing.T) {
		assert.Equal(t, []string{"dipirona", "gotas"}, Tokens("dipirona gotas dipirona"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Tokens(""))
		assert.Empty(t, Tokens("de mg 500"))
	})
}

func TestExpand(t *testing.T) {
	lex := lexicon.Default()

	t.Run("keeps every input token", func(t *testing.T) {
		in := []string{"dipirona", "xpe"}
		out := Expand(in, lex)
		for _, tok := range in {
			assert.Contains(t, out, tok)
		}
	})

	t.Run("adds canonical for an abbreviation", func(t *testing.T) {
		out := Expand([]string{"xpe"}, lex)
		assert.Contains(t, out, "xarope")
	})

	t.Run("unknown tokens pass through untouched", func(t *testing.T) {
		assert.Equal(t, []string{"dipirona"}, Expand([]string{"dipirona"}, lex))
	})

	t.Run("no duplicates", func(t *testing.T) {
		out := Expand([]string{"xarope", "xpe"}, lex)
		seen := make(map[string]int)
		for _, tok := range out {
			seen[tok]++
		}
		for tok, n := range seen {
			assert.Equal(t, 1, n, "token %q", tok)
		}
	})
}
