// Package sheet loads both statement container formats (legacy binary .xls
// and zip-based .xlsx) into a uniform in-memory grid of raw cell text. The
// grid keeps raw values — day serials stay numbers, amounts keep their
// separators — so the parsers downstream see the same input regardless of
// container.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

// Grid is a dense matrix of raw cell strings with 1-based addressing.
// Out-of-range lookups return the empty string, mirroring how spreadsheets
// treat missing cells.
type Grid struct {
	rows    [][]string
	maxCols int
}

// Open sniffs the container format from the filename extension and parses
// the byte buffer. A buffer that is not a valid container of the declared
// format wraps statement.ErrCorruptedInput.
func Open(data []byte, filename string) (*Grid, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file %q", statement.ErrCorruptedInput, filename)
	}
	if strings.EqualFold(filepath.Ext(filename), ".xls") {
		return openXLS(data, filename)
	}
	return openXLSX(data, filename)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the widest row length.
func (g *Grid) Cols() int {
	return g.maxCols
}

// Cell returns the raw trimmed value at the 1-based row/column.
func (g *Grid) Cell(row, col int) string {
	if row < 1 || row > len(g.rows) {
		return ""
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}

// CellRef returns the value at an A1-style reference such as "B7". Invalid
// references read as empty cells.
func (g *Grid) CellRef(ref string) string {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return ""
	}
	return g.Cell(row, col)
}

// Row returns a copy of the 1-based row, or nil when out of range.
func (g *Grid) Row(row int) []string {
	if row < 1 || row > len(g.rows) {
		return nil
	}
	out := make([]string, len(g.rows[row-1]))
	copy(out, g.rows[row-1])
	return out
}

func newGrid(rows [][]string) *Grid {
	g := &Grid{rows: rows}
	for _, r := range rows {
		if len(r) > g.maxCols {
			g.maxCols = len(r)
		}
	}
	return g
}
