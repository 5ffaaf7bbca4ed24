// Package extract walks the located data region of a statement sheet and
// produces the ordered sequence of normalized transaction records the rest
// of the pipeline operates on. Extraction is a pure read of the grid.
package extract

import (
	"log/slog"

	"github.com/fmadrigalcr/reclasor/internal/domain/layout"
	"github.com/fmadrigalcr/reclasor/internal/domain/parse"
	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/internal/domain/textnorm"
)

// Records reads every row of the bounded region into transaction records.
// A row counts as empty only when all mapped fields are blank; extraction
// stops early after the layout's streak of consecutive empty rows so
// trailing noise below the real data is never scanned. Header re-statements
// inside the region (some exports repeat the header per page) are skipped.
func Records(g *sheet.Grid, loc layout.Location, l layout.Layout, logger *slog.Logger) []*statement.TransactionRecord {
	records := make([]*statement.TransactionRecord, 0, loc.DataEnd-loc.DataStart+1)

	streak := 0
	for row := loc.DataStart; row <= loc.DataEnd; row++ {
		if l.EmptyStreak > 0 && streak >= l.EmptyStreak {
			break
		}

		if rowIsEmpty(g, row, loc.Headers) {
			streak++
			continue
		}
		streak = 0

		if isHeaderEcho(g, row, loc, l) {
			continue
		}

		rec := &statement.TransactionRecord{
			Row:         row,
			Code:        field(g, row, loc.Headers, statement.FieldCode),
			Description: field(g, row, loc.Headers, statement.FieldDescription),
			Reference:   field(g, row, loc.Headers, statement.FieldReference),
			ReviewFlag:  field(g, row, loc.Headers, statement.FieldReview),
			Debit:       parse.Decimal(field(g, row, loc.Headers, statement.FieldDebit)),
			Credit:      parse.Decimal(field(g, row, loc.Headers, statement.FieldCredit)),
			Balance:     parse.Decimal(field(g, row, loc.Headers, statement.FieldBalance)),
		}
		if raw := field(g, row, loc.Headers, statement.FieldDate); raw != "" {
			if d, ok := parse.Date(raw); ok {
				rec.Date = d
			}
		}

		records = append(records, rec)
	}

	logger.Debug("extracted statement records",
		slog.String("layout", l.Name),
		slog.Int("rows", len(records)),
		slog.Int("data_start", loc.DataStart),
		slog.Int("data_end", loc.DataEnd),
	)

	return records
}

// PruneNoMovement removes rows whose debit and credit are both null or zero.
// Banks pad detail exports with informational rows that carry no amount.
func PruneNoMovement(records []*statement.TransactionRecord) []*statement.TransactionRecord {
	kept := records[:0]
	for _, rec := range records {
		if parse.IsZero(rec.Debit) && parse.IsZero(rec.Credit) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func field(g *sheet.Grid, row int, headers statement.HeaderMap, f statement.Field) string {
	col := headers.Column(f)
	if col == 0 {
		// Optional column missing from this export: default, don't fail.
		return ""
	}
	return g.Cell(row, col)
}

func rowIsEmpty(g *sheet.Grid, row int, headers statement.HeaderMap) bool {
	for _, col := range headers {
		if g.Cell(row, col) != "" {
			return false
		}
	}
	return true
}

// isHeaderEcho reports whether every mapped cell of the row restates its own
// header text.
func isHeaderEcho(g *sheet.Grid, row int, loc layout.Location, l layout.Layout) bool {
	matched := 0
	for f, col := range loc.Headers {
		cell := textnorm.FoldKey(g.Cell(row, col))
		if cell == "" {
			continue
		}
		echo := false
		for _, alias := range l.Vocabulary[f] {
			if cell == alias {
				echo = true
				break
			}
		}
		if !echo {
			return false
		}
		matched++
	}
	return matched > 0
}
