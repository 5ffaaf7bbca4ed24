package sheet

import (
	"regexp"
	"strings"
)

// Metadata is the statement-level information read from well-known cells
// above the data region: the product banner the bank prints and the
// statement currency.
type Metadata struct {
	Product       string
	AccountNumber string
	Currency      string
}

var ibanLike = regexp.MustCompile(`CR\d{20}`)

// ReadMetadata pulls the product and currency cells declared by the layout
// and derives the bank account number. Blank refs are skipped.
func ReadMetadata(g *Grid, productRef, currencyRef string) Metadata {
	m := Metadata{}
	if productRef != "" {
		m.Product = g.CellRef(productRef)
		m.AccountNumber = AccountNumber(m.Product)
	}
	if currencyRef != "" {
		m.Currency = g.CellRef(currencyRef)
	}
	return m
}

// AccountNumber extracts the bank account number from a product banner such
// as "Producto: Cuenta Corriente CR01012345678901234567". A full IBAN-style
// code is preferred; otherwise the account is the inner slice of the last
// token, skipping the 12-character prefix and the trailing check digit the
// bank appends.
func AccountNumber(product string) string {
	text := strings.TrimSpace(product)
	if text == "" {
		return ""
	}

	if code := ibanLike.FindString(text); code != "" {
		return code
	}

	if idx := strings.Index(text, ":"); idx >= 0 {
		text = strings.TrimSpace(text[idx+1:])
	}
	if tokens := strings.Fields(text); len(tokens) > 1 {
		text = tokens[len(tokens)-1]
	}

	var condensed strings.Builder
	for _, r := range text {
		if r != ' ' && r != '\t' {
			condensed.WriteRune(r)
		}
	}
	t := condensed.String()
	if len(t) <= 13 {
		return ""
	}
	return strings.TrimSpace(t[12 : len(t)-1])
}
