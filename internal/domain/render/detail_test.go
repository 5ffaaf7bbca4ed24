package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

func TestDetail(t *testing.T) {
	meta := sheet.Metadata{
		Product:       "Producto: Cuenta Corriente CR01012345678901234567",
		AccountNumber: "CR01012345678901234567",
		Currency:      "CRC",
	}

	records := []*statement.TransactionRecord{
		taggedRecord("DEP", "Depósito planilla", "REF1", "", "2500"),
		taggedRecord("T/D", "Transferencia SINPE a proveedor", "REF2", "1200", ""),
		taggedRecord("O/D", "Comisión bancaria Retiro ATM", "REF3", "25", ""),
	}

	in := DetailInput{
		Records:          records,
		Metadata:         meta,
		RangeText:        "01/03/2026 - 31/03/2026",
		HighlightFilters: []string{"sinpe"},
	}

	artifact, err := Detail(in, "estado.xlsx", fixedNow)
	require.NoError(t, err)
	assert.Contains(t, artifact.Filename, "_formateado_")
	assert.Equal(t, MIMEXLSX, artifact.MIME)

	rows := readRows(t, artifact.Content, detailSheetName)

	t.Run("banner block", func(t *testing.T) {
		assert.Equal(t, detailTitle, rows[0][0])
		assert.Equal(t, meta.Product, rows[1][0])
		assert.Equal(t, "Moneda: CRC", rows[2][0])
		assert.Equal(t, "Período: 01/03/2026 - 31/03/2026", rows[3][0])
	})

	t.Run("header and data rows", func(t *testing.T) {
		// Title, three banner lines, a spacer, the header, the secondary
		// band, then the data.
		headerRow := rows[5]
		assert.Equal(t, "Fecha", headerRow[0])
		assert.Equal(t, "Revisar", headerRow[7])

		first := rows[7]
		assert.Equal(t, "DEP", first[1])
		assert.Equal(t, "Depósito planilla", first[2])
		assert.Equal(t, "2500", first[5])
	})

	t.Run("highlight filter stamps the review flag", func(t *testing.T) {
		assert.Equal(t, reviewStamp, records[1].ReviewFlag)
		assert.Empty(t, records[0].ReviewFlag)
		assert.Empty(t, records[2].ReviewFlag)

		second := rows[8]
		require.Greater(t, len(second), 7)
		assert.Equal(t, reviewStamp, second[7])
	})
}

func TestSummary(t *testing.T) {
	records := []*statement.TransactionRecord{
		taggedRecord("DEP", "Depósito", "REF1", "", "2500"),
		taggedRecord("T/D", "Transferencia", "REF2", "1200", ""),
		// Both sides positive: credit wins.
		taggedRecord("T/C", "Reverso parcial", "REF3", "100", "400"),
		// No amount at all: skipped.
		taggedRecord("", "Nota informativa", "REF4", "", ""),
	}

	artifact, err := Summary(records, "CR01-0123-456789", "estado.xlsx", fixedNow)
	require.NoError(t, err)
	assert.Contains(t, artifact.Filename, "_contable_")

	rows := readRows(t, artifact.Content, summarySheetName)
	require.Len(t, rows, 4)
	assert.Equal(t, summaryHeaders, rows[0][:len(summaryHeaders)])

	t.Run("account keeps digits only", func(t *testing.T) {
		assert.Equal(t, "010123456789", rows[1][0])
	})

	t.Run("amounts prefer the credit side", func(t *testing.T) {
		assert.Equal(t, "2500", rows[1][3])
		assert.Equal(t, "1200", rows[2][3])
		assert.Equal(t, "400", rows[3][3])
	})

	t.Run("dates render day first", func(t *testing.T) {
		assert.Equal(t, "18/03/2026", rows[1][4])
	})
}
