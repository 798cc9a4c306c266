package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("lowercases and strips diacritics", func(t *testing.T) {
		assert.Equal(t, "dipirona sodica 500mg", Normalize("Dipirona Sódica 500mg"))
	})

	t.Run("replaces punctuation with spaces", func(t *testing.T) {
		assert.Equal(t, "dipirona 500mg ml", Normalize("dipirona, 500mg/ml"))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "acido acetilsalicilico", Normalize("  ácido   acetilsalicílico  "))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", Normalize(""))
		assert.Equal(t, "", Normalize("   ,,,   "))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"Dipirona Sódica 500mg",
			"IBUPROFENO-600",
			"paracetamol gotas 200mg/ml",
			"çãõéê",
		}
		for _, in := range inputs {
			once := Normalize(in)
			assert.Equal(t, once, Normalize(once), "input %q", in)
		}
	})
}

func TestNormalizeUpper(t *testing.T) {
	assert.Equal(t, "500MG", NormalizeUpper(" 500mg "))
	assert.Equal(t, "SPRAY NASAL", NormalizeUpper("spray   nasal"))
}
