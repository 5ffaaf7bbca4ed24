// Package parse resolves the ambiguous numeric and date encodings bank
// exports use: mixed thousands/decimal separators, spreadsheet day serials,
// and a handful of string date formats.
package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance used everywhere amounts are compared against
// zero. Statement cells frequently hold float residue like 0.0000000001.
const Epsilon = 1e-9

var epsilon = decimal.NewFromFloat(Epsilon)

// Decimal parses an amount cell into a NullDecimal. Empty cells and the
// placeholder dashes banks print for "no movement" are invalid (null), never
// an error. Separator disambiguation policy:
//
//   - one separator type repeated: all but the last occurrence are thousands
//     separators, the last is the decimal point ("1.234.567,89" style input
//     that lost its comma still parses);
//   - both separators present: whichever appears later is the decimal point;
//   - a lone comma is a decimal point.
func Decimal(value string) decimal.NullDecimal {
	text := strings.TrimSpace(value)
	if text == "" || text == "-" || text == "--" {
		return decimal.NullDecimal{}
	}

	// Strip currency symbols, NBSP and grouping spaces before looking at
	// separators.
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	text = b.String()
	if text == "" || text == "-" || text == "--" {
		return decimal.NullDecimal{}
	}

	commas := strings.Count(text, ",")
	dots := strings.Count(text, ".")

	switch {
	case commas > 1 && dots == 0:
		last := strings.LastIndex(text, ",")
		text = strings.ReplaceAll(text[:last], ",", "") + "." + text[last+1:]
	case dots > 1 && commas == 0:
		last := strings.LastIndex(text, ".")
		text = strings.ReplaceAll(text[:last], ".", "") + "." + text[last+1:]
	case commas == 1 && dots == 0:
		text = strings.Replace(text, ",", ".", 1)
	case commas >= 1 && dots >= 1:
		if strings.LastIndex(text, ".") < strings.LastIndex(text, ",") {
			text = strings.ReplaceAll(text, ".", "")
			text = strings.Replace(text, ",", ".", 1)
		} else {
			text = strings.ReplaceAll(text, ",", "")
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// IsPositive reports whether the amount is strictly greater than zero with
// the shared epsilon tolerance. Null amounts are never positive.
func IsPositive(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.GreaterThan(epsilon)
}

// IsZero reports whether the amount is null or within epsilon of zero. Rows
// where both debit and credit are zero in this sense carry no movement.
func IsZero(d decimal.NullDecimal) bool {
	return !d.Valid || d.Decimal.Abs().LessThanOrEqual(epsilon)
}
