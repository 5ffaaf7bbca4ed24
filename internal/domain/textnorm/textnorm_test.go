package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	t.Run("strips accents and lowercases", func(t *testing.T) {
		assert.Equal(t, "descripcion", Fold("Descripción"))
		assert.Equal(t, "credito", Fold("CRÉDITO"))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "fecha", Fold("  Fecha \t"))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"Número Documento", "débitos", "plain"} {
			once := Fold(s)
			assert.Equal(t, once, Fold(once))
		}
	})
}

func TestFoldKey(t *testing.T) {
	t.Run("accent and case variants collapse to one key", func(t *testing.T) {
		variants := []string{"Número Documento", "numero documento", "NÚMERO  DOCUMENTO", " numero documento "}
		for _, v := range variants {
			assert.Equal(t, "numero documento", FoldKey(v), "variant %q", v)
		}
	})

	t.Run("strips punctuation", func(t *testing.T) {
		assert.Equal(t, "debitos", FoldKey("Débitos:"))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", FoldKey("   "))
	})
}
