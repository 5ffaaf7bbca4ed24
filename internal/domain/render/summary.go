package render

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

const summarySheetName = "Resumen"

var summaryHeaders = []string{
	"Cuenta Bancaria",
	"Tipo Documento",
	"Número",
	"Monto",
	"Fecha documento",
}

// Summary renders the 5-column accounting restatement. Records carrying no
// positive amount on either side are skipped; when both sides are positive
// the credit wins.
func Summary(records []*statement.TransactionRecord, accountNumber, originalName string, now time.Time) (Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheetName); err != nil {
		return Artifact{}, fmt.Errorf("summary: %w", err)
	}
	styles, err := newStyleSet(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("summary: building styles: %w", err)
	}

	account := digitsOnly(accountNumber)

	for c, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		f.SetCellValue(summarySheetName, cell, h)
	}
	hEnd, _ := excelize.CoordinatesToCellName(len(summaryHeaders), 1)
	f.SetCellStyle(summarySheetName, "A1", hEnd, styles.header)

	row := 2
	for _, rec := range records {
		amount := positiveAmount(rec)
		if amount == 0 {
			continue
		}

		fecha := ""
		if rec.HasDate() {
			fecha = rec.Date.Format("02/01/2006")
		}

		for c, v := range []any{account, rec.Code, rec.Reference, amount, fecha} {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(summarySheetName, cell, v)
			if c == 3 {
				f.SetCellStyle(summarySheetName, cell, cell, styles.zebraAmount[row%2])
			} else {
				f.SetCellStyle(summarySheetName, cell, cell, styles.zebra[row%2])
			}
		}
		row++
	}

	for c, h := range summaryHeaders {
		name, _ := excelize.ColumnNumberToName(c + 1)
		f.SetColWidth(summarySheetName, name, name, columnWidth(len(h)+4))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("summary: writing workbook: %w", err)
	}
	return Artifact{
		Filename: OutputFilename(originalName, "contable", now),
		MIME:     MIMEXLSX,
		Content:  buf.Bytes(),
	}, nil
}
