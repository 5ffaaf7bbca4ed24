package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/internal/domain/textnorm"
)

const detailTitle = "DETALLE DE MOVIMIENTOS DEL PERÍODO"

// reviewStamp is written into the review column of highlighted rows so the
// flag survives into any later template pass over the artifact.
const reviewStamp = "Revisar"

const detailSheetName = "Detalle"

type columnKind int

const (
	kindText columnKind = iota
	kindDate
	kindAmount
)

type detailColumn struct {
	title string
	kind  columnKind
}

var detailColumns = []detailColumn{
	{"Fecha", kindDate},
	{"Código", kindText},
	{"Descripción", kindText},
	{"Referencia", kindText},
	{"Débitos", kindAmount},
	{"Créditos", kindAmount},
	{"Balance", kindAmount},
	{"Revisar", kindText},
}

// DetailInput is everything the detail renderer consumes.
type DetailInput struct {
	Records  []*statement.TransactionRecord
	Metadata sheet.Metadata
	// RangeText is the human-readable period the records were filtered to,
	// empty when no filter was requested.
	RangeText string
	// HighlightFilters are description substrings (matched folded) whose
	// rows get the highlight fill and the review stamp.
	HighlightFilters []string
}

// Detail renders the styled movement sheet. Highlighted records get their
// ReviewFlag stamped in place.
func Detail(in DetailInput, originalName string, now time.Time) (Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailSheetName); err != nil {
		return Artifact{}, fmt.Errorf("detail: %w", err)
	}
	styles, err := newStyleSet(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("detail: building styles: %w", err)
	}

	filters := foldFilters(in.HighlightFilters)
	cols := len(detailColumns)

	// Banner block: title plus the statement metadata worth keeping in
	// front of the reader.
	lastCol, _ := excelize.ColumnNumberToName(cols)
	if err := f.MergeCell(detailSheetName, "A1", lastCol+"1"); err != nil {
		return Artifact{}, fmt.Errorf("detail: %w", err)
	}
	f.SetCellValue(detailSheetName, "A1", detailTitle)
	f.SetCellStyle(detailSheetName, "A1", lastCol+"1", styles.title)
	f.SetRowHeight(detailSheetName, 1, 24)

	banner := []string{}
	if in.Metadata.Product != "" {
		// The bank's banner already carries its own label.
		banner = append(banner, in.Metadata.Product)
	}
	if in.Metadata.Currency != "" {
		banner = append(banner, "Moneda: "+in.Metadata.Currency)
	}
	if in.RangeText != "" {
		banner = append(banner, "Período: "+in.RangeText)
	}
	for i, line := range banner {
		cell := fmt.Sprintf("A%d", 2+i)
		f.SetCellValue(detailSheetName, cell, line)
		f.SetCellStyle(detailSheetName, cell, cell, styles.banner)
	}

	headerRow := 2 + len(banner) + 1
	secondaryRow := headerRow + 1
	dataStart := headerRow + 2

	longest := make([]int, cols)
	for c, col := range detailColumns {
		cell, _ := excelize.CoordinatesToCellName(c+1, headerRow)
		f.SetCellValue(detailSheetName, cell, col.title)
		longest[c] = len(col.title)
	}
	hStart, _ := excelize.CoordinatesToCellName(1, headerRow)
	hEnd, _ := excelize.CoordinatesToCellName(cols, headerRow)
	f.SetCellStyle(detailSheetName, hStart, hEnd, styles.header)

	sStart, _ := excelize.CoordinatesToCellName(1, secondaryRow)
	sEnd, _ := excelize.CoordinatesToCellName(cols, secondaryRow)
	f.SetCellStyle(detailSheetName, sStart, sEnd, styles.secondary)

	for i, rec := range in.Records {
		row := dataStart + i
		highlighted := matchesFilter(rec.Description, filters)
		if highlighted && rec.ReviewFlag == "" {
			rec.ReviewFlag = reviewStamp
		}

		values := []any{
			nil,
			rec.Code,
			rec.Description,
			rec.Reference,
			amountValue(rec.Debit),
			amountValue(rec.Credit),
			amountValue(rec.Balance),
			rec.ReviewFlag,
		}
		if rec.HasDate() {
			values[0] = rec.Date
		}

		zebra := i % 2
		for c, col := range detailColumns {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if values[c] != nil {
				f.SetCellValue(detailSheetName, cell, values[c])
			}
			f.SetCellStyle(detailSheetName, cell, cell, cellStyle(styles, col.kind, zebra, highlighted))
			if n := displayLen(values[c]); n > longest[c] {
				longest[c] = n
			}
		}
	}

	for c := range detailColumns {
		name, _ := excelize.ColumnNumberToName(c + 1)
		f.SetColWidth(detailSheetName, name, name, columnWidth(longest[c]))
	}

	topLeft, _ := excelize.CoordinatesToCellName(1, dataStart)
	if err := f.SetPanes(detailSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      dataStart - 1,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}); err != nil {
		return Artifact{}, fmt.Errorf("detail: freezing panes: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("detail: writing workbook: %w", err)
	}
	return Artifact{
		Filename: OutputFilename(originalName, "formateado", now),
		MIME:     MIMEXLSX,
		Content:  buf.Bytes(),
	}, nil
}

func cellStyle(s *styleSet, kind columnKind, zebra int, highlighted bool) int {
	if highlighted {
		switch kind {
		case kindDate:
			return s.highlightDate
		case kindAmount:
			return s.highlightAmount
		default:
			return s.highlight
		}
	}
	switch kind {
	case kindDate:
		return s.zebraDate[zebra]
	case kindAmount:
		return s.zebraAmount[zebra]
	default:
		return s.zebra[zebra]
	}
}

func foldFilters(filters []string) []string {
	folded := make([]string, 0, len(filters))
	for _, flt := range filters {
		if f := textnorm.Fold(flt); f != "" {
			folded = append(folded, f)
		}
	}
	return folded
}

func matchesFilter(description string, folded []string) bool {
	if len(folded) == 0 {
		return false
	}
	desc := textnorm.Fold(description)
	for _, f := range folded {
		if strings.Contains(desc, f) {
			return true
		}
	}
	return false
}

func displayLen(v any) int {
	switch t := v.(type) {
	case string:
		return len(t)
	case float64:
		return len(fmt.Sprintf("%.2f", t))
	case time.Time:
		return len(dateFormat)
	default:
		return 0
	}
}
