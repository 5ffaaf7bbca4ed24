package parse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "1500", "1500"},
		{"dot decimal", "1234.56", "1234.56"},
		{"comma decimal", "1234,56", "1234.56"},
		{"european grouping", "1.234,56", "1234.56"},
		{"american grouping", "1,234.56", "1234.56"},
		{"repeated dots", "1.234.567", "1234.567"},
		{"repeated commas", "1,234,567", "1234.567"},
		{"lone comma is decimal", "0,5", "0.5"},
		{"negative amount", "-2.500,00", "-2500"},
		{"currency prefix stripped", "₡ 1.000,25", "1000.25"},
		{"nbsp grouping stripped", "1 234,56", "1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decimal(tt.input)
			require.True(t, got.Valid, "expected a parsed value")
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Decimal.Equal(want), "got %s, want %s", got.Decimal, want)
		})
	}

	t.Run("separator styles agree", func(t *testing.T) {
		a := Decimal("1.234,56")
		b := Decimal("1,234.56")
		require.True(t, a.Valid)
		require.True(t, b.Valid)
		assert.True(t, a.Decimal.Equal(b.Decimal))
	})

	t.Run("placeholders are null", func(t *testing.T) {
		for _, s := range []string{"", "  ", "-", "--", "N/A"} {
			assert.False(t, Decimal(s).Valid, "input %q", s)
		}
	})
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(Decimal("0.01")))
	assert.False(t, IsPositive(Decimal("0")))
	assert.False(t, IsPositive(Decimal("-5")))
	assert.False(t, IsPositive(decimal.NullDecimal{}))

	// Residue below the epsilon is not a movement.
	assert.False(t, IsPositive(Decimal("0.0000000001")))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(Decimal("0")))
	assert.True(t, IsZero(Decimal("0.0000000001")))
	assert.True(t, IsZero(decimal.NullDecimal{}))
	assert.False(t, IsZero(Decimal("12.50")))
	assert.False(t, IsZero(Decimal("-12.50")))
}
