// Package statement defines the shared data model of the reclassification
// pipeline: the normalized transaction record, the header map produced by the
// locator, and the outcome taxonomy every stage reports against.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names a canonical statement column. Layout descriptors map bank
// specific header spellings onto these keys; every stage downstream of the
// locator addresses columns through them and never re-scans headers.
type Field string

const (
	FieldDate        Field = "fecha"
	FieldCode        Field = "codigo"
	FieldDescription Field = "descripcion"
	FieldReference   Field = "referencia"
	FieldDebit       Field = "debitos"
	FieldCredit      Field = "creditos"
	FieldBalance     Field = "balance"
	FieldReview      Field = "revisar"
)

// HeaderMap maps a canonical field to its 1-based column index in the source
// sheet. Built once per sheet by the locator and read-only afterwards. When a
// sheet carries duplicate headers the last occurrence wins.
type HeaderMap map[Field]int

// Column returns the 1-based column for the field, or 0 when the layout did
// not provide it.
func (h HeaderMap) Column(f Field) int {
	return h[f]
}

// Has reports whether the field was located in the sheet.
func (h HeaderMap) Has(f Field) bool {
	return h[f] > 0
}

// TransactionRecord is one normalized statement movement. Records are owned
// by the pipeline invocation that extracted them: the classification engine
// and the date filter mutate them in place, the renderers only read them.
type TransactionRecord struct {
	Row         int // 1-based row in the source sheet, kept for diagnostics
	Date        time.Time
	Code        string
	Description string
	Reference   string
	Debit       decimal.NullDecimal
	Credit      decimal.NullDecimal
	Balance     decimal.NullDecimal
	ReviewFlag  string
}

// HasDate reports whether the record carried a parsable date. A zero time
// means the cell was blank or unparsable, which callers must treat as
// distinct from "filtered out".
func (r *TransactionRecord) HasDate() bool {
	return !r.Date.IsZero()
}
