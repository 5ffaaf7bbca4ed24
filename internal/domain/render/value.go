package render

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/fmadrigalcr/reclasor/internal/domain/parse"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

// amountValue converts a nullable decimal to a cell value: nil for null so
// the cell stays genuinely empty rather than showing 0.00.
func amountValue(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	v, _ := d.Decimal.Float64()
	return v
}

// positiveAmount returns the positive side of a movement, preferring credit
// when both sides are positive. Zero when neither side is.
func positiveAmount(rec *statement.TransactionRecord) float64 {
	if parse.IsPositive(rec.Credit) {
		v, _ := rec.Credit.Decimal.Float64()
		return v
	}
	if parse.IsPositive(rec.Debit) {
		v, _ := rec.Debit.Decimal.Float64()
		return v
	}
	return 0
}

var nonDigits = regexp.MustCompile(`\D`)

// digitsOnly strips everything but digits from an account identifier,
// falling back to the original text when nothing is left.
func digitsOnly(s string) string {
	d := nonDigits.ReplaceAllString(s, "")
	if d == "" {
		return s
	}
	return d
}
