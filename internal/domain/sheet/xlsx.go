package sheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

// openXLSX reads the first sheet of a zip-based workbook. RawCellValue keeps
// date cells as day serials instead of locale-formatted strings, which is
// what the date parser expects.
func openXLSX(data []byte, filename string) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", statement.ErrCorruptedInput, filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %q has no sheets", statement.ErrCorruptedInput, filename)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q of %q: %v", statement.ErrCorruptedInput, sheets[0], filename, err)
	}

	return newGrid(rows), nil
}
