package sheet

import (
	"bytes"
	"fmt"

	"github.com/shakinm/xlsReader/xls"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

// openXLS reads the first sheet of a legacy BIFF workbook.
func openXLS(data []byte, filename string) (*Grid, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", statement.ErrCorruptedInput, filename, err)
	}
	if wb.GetNumberSheets() == 0 {
		return nil, fmt.Errorf("%w: %q has no sheets", statement.ErrCorruptedInput, filename)
	}

	s, err := wb.GetSheet(0)
	if err != nil || s == nil {
		return nil, fmt.Errorf("%w: reading first sheet of %q: %v", statement.ErrCorruptedInput, filename, err)
	}

	var rows [][]string
	for i := 0; i <= int(s.GetNumberRows()); i++ {
		row, err := s.GetRow(i)
		if err != nil || row == nil {
			rows = append(rows, nil)
			continue
		}
		var cells []string
		for _, col := range row.GetCols() {
			if col == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}

	// Trim the trailing all-empty rows the BIFF reader over-reports.
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		empty := true
		for _, c := range last {
			if c != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		rows = rows[:len(rows)-1]
	}

	return newGrid(rows), nil
}
