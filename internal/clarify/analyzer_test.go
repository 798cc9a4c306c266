package clarify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(lexicon.PharmaceuticalForms())
}

func products(descriptions ...string) []catalog.Product {
	out := make([]catalog.Product, len(descriptions))
	for i, d := range descriptions {
		out[i] = catalog.Product{ID: int64(i + 1), Description: d}
	}
	return out
}

func TestExtract(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("concentration", func(t *testing.T) {
		attrs := a.Extract("Dipirona Sodica 500mg 10 comprimidos")
		assert.Contains(t, attrs.Concentrations, "500MG")
	})

	t.Run("compound concentration", func(t *testing.T) {
		attrs := a.Extract("Dipirona gotas 500mg/ml")
		assert.Contains(t, attrs.Concentrations, "500MG/ML")
	})

	t.Run("forms are canonical and not first-match-only", func(t *testing.T) {
		attrs := a.Extract("Dipirona solucao gotas 20ml")
		assert.Contains(t, attrs.Forms, "GOTAS")
		assert.Contains(t, attrs.Forms, "SOLUCAO")
	})

	t.Run("presentation volume and quantity", func(t *testing.T) {
		attrs := a.Extract("Xarope 120ml")
		assert.Contains(t, attrs.Presentations, "120ML")

		attrs = a.Extract("Ibuprofeno 600 20 comprimidos")
		assert.Contains(t, attrs.Presentations, "20 COMPRIMIDOS")
	})
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("fewer than two candidates never clarifies", func(t *testing.T) {
		got := a.Analyze("dipirona", products("Dipirona 500mg"))
		assert.False(t, got.Needed)
	})

	t.Run("divergent concentrations trigger clarification", func(t *testing.T) {
		got := a.Analyze("dipirona", products(
			"Dipirona 500mg 10cp",
			"Dipirona 1g 10cp",
			"Dipirona gotas 500mg/ml",
		))
		require.True(t, got.Needed)
		assert.Equal(t, TypeConcentration, got.Type)
		assert.Contains(t, got.Options, "500MG")
		assert.Contains(t, got.Options, "1G")
	})

	t.Run("query with concentration skips that family", func(t *testing.T) {
		got := a.Analyze("dipirona 500mg", products(
			"Dipirona 500mg 10cp",
			"Dipirona 1g 10cp",
		))
		assert.NotEqual(t, TypeConcentration, got.Type)
	})

	t.Run("concentration has priority over form", func(t *testing.T) {
		got := a.Analyze("dipirona", products(
			"Dipirona 500mg comprimido",
			"Dipirona 1g xarope",
		))
		require.True(t, got.Needed)
		assert.Equal(t, TypeConcentration, got.Type)
	})

	t.Run("divergent forms trigger when concentrations agree", func(t *testing.T) {
		got := a.Analyze("dipirona", products(
			"Dipirona 500mg comprimido",
			"Dipirona 500mg xarope",
		))
		require.True(t, got.Needed)
		assert.Equal(t, TypeForm, got.Type)
		assert.Contains(t, got.Options, "COMPRIMIDO")
		assert.Contains(t, got.Options, "XAROPE")
	})

	t.Run("query with form skips the form family", func(t *testing.T) {
		got := a.Analyze("dipirona xarope", products(
			"Dipirona 500mg comprimido",
			"Dipirona 500mg xarope",
		))
		assert.NotEqual(t, TypeForm, got.Type)
	})

	t.Run("agreeing candidates need no clarification", func(t *testing.T) {
		got := a.Analyze("dipirona", products(
			"Dipirona 500mg 10cp Generico",
			"Dipirona 500mg 10cp Neo Quimica",
		))
		assert.False(t, got.Needed)
	})

	t.Run("at most five options ordered by frequency", func(t *testing.T) {
		got := a.Analyze("dipirona", products(
			"Dipirona 500mg", "Dipirona 500mg forte", "Dipirona 1g",
			"Dipirona 300mg", "Dipirona 250mg", "Dipirona 750mg",
			"Dipirona 100mg",
		))
		require.True(t, got.Needed)
		assert.LessOrEqual(t, len(got.Options), 5)
		assert.Equal(t, "500MG", got.Options[0])
	})
}
