package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
)

func TestFormExtractor(t *testing.T) {
	fe := NewFormExtractor(lexicon.PharmaceuticalForms())

	t.Run("extracts form and strips connectives", func(t *testing.T) {
		got := fe.Extract("xarope de dipirona")
		assert.Equal(t, "xarope", got.Canonical)
		assert.Equal(t, "dipirona", got.Residual)
		assert.Contains(t, got.Variants, "xpe")
	})

	t.Run("form after the ingredient", func(t *testing.T) {
		got := fe.Extract("dipirona gotas")
		assert.Equal(t, "gotas", got.Canonical)
		assert.Equal(t, "dipirona", got.Residual)
	})

	t.Run("abbreviated form variant", func(t *testing.T) {
		got := fe.Extract("dipirona xpe")
		assert.Equal(t, "xarope", got.Canonical)
		assert.Equal(t, "dipirona", got.Residual)
	})

	t.Run("no form keeps query untouched", func(t *testing.T) {
		got := fe.Extract("dipirona 500mg")
		assert.Empty(t, got.Canonical)
		assert.Nil(t, got.Variants)
		assert.Equal(t, "dipirona 500mg", got.Residual)
	})

	t.Run("whole words only", func(t *testing.T) {
		// "gel" must not match inside "gelo".
		got := fe.Extract("bolsa de gelo")
		assert.NotEqual(t, "gel", got.Canonical)
	})

	t.Run("multi word form phrase", func(t *testing.T) {
		got := fe.Extract("spray nasal soro")
		assert.Equal(t, "spray_nasal", got.Canonical)
		assert.Equal(t, "soro", got.Residual)
	})
}
