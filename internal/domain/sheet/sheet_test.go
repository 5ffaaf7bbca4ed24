package sheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

func buildXLSX(t *testing.T, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestOpen(t *testing.T) {
	t.Run("reads xlsx into the grid", func(t *testing.T) {
		data := buildXLSX(t, map[string]any{
			"A1": "Fecha",
			"B1": "Débitos",
			"A2": "15/03/2026",
			"B2": "1.234,56",
		})

		g, err := Open(data, "estado.xlsx")
		require.NoError(t, err)
		assert.Equal(t, 2, g.Rows())
		assert.Equal(t, "Fecha", g.Cell(1, 1))
		assert.Equal(t, "1.234,56", g.Cell(2, 2))
	})

	t.Run("empty file is corrupted input", func(t *testing.T) {
		_, err := Open(nil, "vacio.xlsx")
		assert.True(t, errors.Is(err, statement.ErrCorruptedInput))
	})

	t.Run("garbage bytes are corrupted input", func(t *testing.T) {
		_, err := Open([]byte("this is not a spreadsheet"), "roto.xlsx")
		assert.True(t, errors.Is(err, statement.ErrCorruptedInput))
	})

	t.Run("garbage xls is corrupted input", func(t *testing.T) {
		_, err := Open([]byte("not a biff stream"), "roto.xls")
		assert.True(t, errors.Is(err, statement.ErrCorruptedInput))
	})
}

func TestGridAddressing(t *testing.T) {
	g := newGrid([][]string{
		{"a", "b"},
		{"c", "d", "e"},
	})

	t.Run("one based lookups", func(t *testing.T) {
		assert.Equal(t, "a", g.Cell(1, 1))
		assert.Equal(t, "e", g.Cell(2, 3))
	})

	t.Run("widest row wins", func(t *testing.T) {
		assert.Equal(t, 3, g.Cols())
	})

	t.Run("out of range reads as empty", func(t *testing.T) {
		assert.Equal(t, "", g.Cell(0, 1))
		assert.Equal(t, "", g.Cell(5, 1))
		assert.Equal(t, "", g.Cell(1, 9))
	})

	t.Run("cell references", func(t *testing.T) {
		assert.Equal(t, "d", g.CellRef("B2"))
		assert.Equal(t, "", g.CellRef("not-a-ref"))
	})

	t.Run("row copies are independent", func(t *testing.T) {
		row := g.Row(1)
		require.NotNil(t, row)
		row[0] = "mutated"
		assert.Equal(t, "a", g.Cell(1, 1))
	})
}
