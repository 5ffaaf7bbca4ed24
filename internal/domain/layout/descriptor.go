// Package layout describes each supported bank export as data — header
// vocabulary, fixed offsets, region markers — and locates the header row and
// data region of an incoming sheet against a descriptor. Bank variants are
// descriptors, not code branches.
package layout

import (
	"fmt"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

// Layout is the per-bank descriptor driving the locator and extractor.
type Layout struct {
	Name string

	// Vocabulary maps each canonical field to the folded header spellings
	// the bank uses for it. Aliases must be unique across fields so a header
	// cell resolves to exactly one field.
	Vocabulary map[statement.Field][]string

	// ExpectedHeaderRow is the row the header usually sits on (0 = unknown).
	// The locator tries it first and falls back to scanning SearchWindow
	// rows from the top.
	ExpectedHeaderRow int
	SearchWindow      int

	// MinHeaderMatches is the minimum number of distinct vocabulary fields a
	// row must match to count as the header.
	MinHeaderMatches int

	// DataStartOffset is the distance from the header row to the first data
	// row (1 = the row immediately below).
	DataStartOffset int

	// SummaryMarker is the folded text of the sentinel row that ends the
	// data region ("Cuadro de Resumen"); SummaryGap is how many rows above
	// the marker the data actually stops.
	SummaryMarker string
	SummaryGap    int

	// EmptyStreak is how many consecutive all-empty rows stop extraction.
	EmptyStreak int

	// Optional lists fields that may be absent without failing location;
	// extraction defaults them to empty values.
	Optional []statement.Field

	// Well-known metadata cells above the data region.
	ProductCellRef  string
	CurrencyCellRef string

	// DropUnparsableDates controls the date-range filter policy for rows
	// whose date cell does not parse: false keeps them (conservative),
	// true treats them as outside the range. Explicit per layout because
	// the bank variants disagree.
	DropUnparsableDates bool
}

// statementVocabulary is the header vocabulary shared by the BAC-style
// exports. Aliases are folded keys (see textnorm.FoldKey).
func statementVocabulary() map[statement.Field][]string {
	return map[statement.Field][]string{
		statement.FieldDate:        {"fecha", "fecha contable", "fecha de registro"},
		statement.FieldCode:        {"codigo"},
		statement.FieldDescription: {"descripcion", "concepto", "detalle"},
		statement.FieldReference:   {"referencia", "numero documento", "numero"},
		statement.FieldDebit:       {"debitos", "debito"},
		statement.FieldCredit:      {"creditos", "credito"},
		statement.FieldBalance:     {"balance", "saldo"},
		statement.FieldReview:      {"revisar"},
	}
}

// Builtin layouts, keyed by name. DetailLayout is the account-statement
// detail export (header on row 14, data from row 16, summary box at the
// bottom); ExportLayout is the compact export the templates are cut from
// (header on row 7).
const (
	DetailLayout = "bac-detalle"
	ExportLayout = "bac-export"
)

func builtinLayouts() map[string]Layout {
	return map[string]Layout{
		DetailLayout: {
			Name:              DetailLayout,
			Vocabulary:        statementVocabulary(),
			ExpectedHeaderRow: 14,
			SearchWindow:      80,
			MinHeaderMatches:  3,
			DataStartOffset:   2,
			SummaryMarker:     "cuadro de resumen",
			SummaryGap:        2,
			EmptyStreak:       3,
			Optional:          []statement.Field{statement.FieldCode, statement.FieldReview, statement.FieldBalance},
			ProductCellRef:    "B7",
			CurrencyCellRef:   "E7",
		},
		ExportLayout: {
			Name:              ExportLayout,
			Vocabulary:        statementVocabulary(),
			ExpectedHeaderRow: 7,
			SearchWindow:      50,
			MinHeaderMatches:  2,
			DataStartOffset:   1,
			SummaryMarker:     "cuadro de resumen",
			SummaryGap:        2,
			EmptyStreak:       5,
			Optional: []statement.Field{
				statement.FieldCode, statement.FieldReview,
				statement.FieldBalance, statement.FieldReference,
			},
			ProductCellRef:  "B7",
			CurrencyCellRef: "E7",
		},
	}
}

// Get returns a builtin layout by name.
func Get(name string) (Layout, error) {
	l, ok := builtinLayouts()[name]
	if !ok {
		return Layout{}, fmt.Errorf("layout: unknown layout %q", name)
	}
	return l, nil
}

// Names lists the builtin layout names.
func Names() []string {
	return []string{DetailLayout, ExportLayout}
}

// IsOptional reports whether the field may be absent from the sheet.
func (l Layout) IsOptional(f statement.Field) bool {
	for _, o := range l.Optional {
		if o == f {
			return true
		}
	}
	return false
}
