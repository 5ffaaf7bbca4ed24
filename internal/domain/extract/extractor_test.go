package extract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/layout"
	"github.com/fmadrigalcr/reclasor/internal/domain/parse"
	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func buildGrid(t *testing.T, l layout.Layout, dataRows [][]any) (*sheet.Grid, layout.Location) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Fecha", "Código", "Descripción", "Referencia", "Débitos", "Créditos", "Balance"}
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, l.ExpectedHeaderRow)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	for r, row := range dataRows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, l.ExpectedHeaderRow+l.DataStartOffset+r)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	g, err := sheet.Open(buf.Bytes(), "estado.xlsx")
	require.NoError(t, err)

	loc, err := layout.Locate(g, l)
	require.NoError(t, err)
	return g, loc
}

func TestRecords(t *testing.T) {
	l, err := layout.Get(layout.DetailLayout)
	require.NoError(t, err)

	t.Run("maps every field", func(t *testing.T) {
		g, loc := buildGrid(t, l, [][]any{
			{"15/03/2026", "DP", "Depósito efectivo", "REF1", "", "1.500,00", "1.500,00"},
			{"16/03/2026", "WD", "Retiro cajero", "REF2", "250,00", "", "1.250,00"},
		})

		records := Records(g, loc, l, discard)
		require.Len(t, records, 2)

		first := records[0]
		assert.True(t, first.HasDate())
		assert.Equal(t, "DP", first.Code)
		assert.Equal(t, "Depósito efectivo", first.Description)
		assert.Equal(t, "REF1", first.Reference)
		assert.False(t, first.Debit.Valid)
		assert.True(t, parse.IsPositive(first.Credit))

		second := records[1]
		assert.True(t, parse.IsPositive(second.Debit))
		assert.Equal(t, "250", second.Debit.Decimal.String())
	})

	t.Run("keeps rows with a single populated field", func(t *testing.T) {
		g, loc := buildGrid(t, l, [][]any{
			{nil, nil, "Nota informativa"},
			{"15/03/2026", "DP", "Depósito", "REF1", "", "100", "100"},
		})

		records := Records(g, loc, l, discard)
		require.Len(t, records, 2)
		assert.Equal(t, "Nota informativa", records[0].Description)
		assert.False(t, records[0].HasDate())
	})

	t.Run("stops after the empty streak", func(t *testing.T) {
		rows := [][]any{
			{"15/03/2026", "DP", "Depósito", "REF1", "", "100", "100"},
		}
		// Three empty rows, then trailing noise that must never be read.
		for i := 0; i < 3; i++ {
			rows = append(rows, []any{nil})
		}
		rows = append(rows, []any{nil, nil, "Generado por el banco"})

		g, loc := buildGrid(t, l, rows)
		records := Records(g, loc, l, discard)
		require.Len(t, records, 1)
	})

	t.Run("skips re-emitted header rows", func(t *testing.T) {
		g, loc := buildGrid(t, l, [][]any{
			{"15/03/2026", "DP", "Depósito", "REF1", "", "100", "100"},
			{"Fecha", "Código", "Descripción", "Referencia", "Débitos", "Créditos", "Balance"},
			{"16/03/2026", "WD", "Retiro", "REF2", "50", "", "50"},
		})

		records := Records(g, loc, l, discard)
		require.Len(t, records, 2)
		assert.Equal(t, "DP", records[0].Code)
		assert.Equal(t, "WD", records[1].Code)
	})
}

func TestPruneNoMovement(t *testing.T) {
	l, err := layout.Get(layout.DetailLayout)
	require.NoError(t, err)

	g, loc := buildGrid(t, l, [][]any{
		{"15/03/2026", "DP", "Depósito", "REF1", "", "100", "100"},
		{"16/03/2026", "", "Saldo informativo", "", "0,00", "0,00", "100"},
		{"17/03/2026", "", "Sin montos", "", "-", "--", "100"},
		{"18/03/2026", "WD", "Retiro", "REF2", "40", "", "60"},
	})

	records := PruneNoMovement(Records(g, loc, l, discard))
	require.Len(t, records, 2)
	assert.Equal(t, "DP", records[0].Code)
	assert.Equal(t, "WD", records[1].Code)
}
