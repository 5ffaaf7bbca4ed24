package layout

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/internal/domain/textnorm"
)

// Location is the result of header/region discovery: where the header sits,
// the column map built from it, and the bounds of the data region. Built
// once per sheet; everything downstream consumes it read-only.
type Location struct {
	HeaderRow int
	DataStart int
	DataEnd   int
	Headers   statement.HeaderMap
}

// maxFuzzyRank bounds the Levenshtein distance accepted when an alias does
// not match a header cell exactly; tolerates one-or-two character typos in
// the export without letting unrelated headers claim a field.
const maxFuzzyRank = 2

// Locate finds the header row of the grid for the given layout and bounds
// the data region. The expected row is scored first with an early exit; the
// fallback scans the search window and keeps the best-scoring row. A sheet
// where no row reaches MinHeaderMatches is not a recognized export and
// yields statement.ErrUnrecognizedLayout — never a silent default.
func Locate(g *sheet.Grid, l Layout) (Location, error) {
	if g.Rows() == 0 {
		return Location{}, fmt.Errorf("%w: empty sheet", statement.ErrUnrecognizedLayout)
	}

	total := len(l.Vocabulary)

	bestRow, bestScore := 0, 0
	var bestHeaders statement.HeaderMap

	consider := func(row int) bool {
		headers := mapRow(g, row, l)
		if len(headers) > bestScore {
			bestRow, bestScore, bestHeaders = row, len(headers), headers
		}
		return len(headers) == total
	}

	if l.ExpectedHeaderRow > 0 && l.ExpectedHeaderRow <= g.Rows() {
		consider(l.ExpectedHeaderRow)
	}
	if bestScore < l.MinHeaderMatches {
		window := l.SearchWindow
		if window <= 0 || window > g.Rows() {
			window = g.Rows()
		}
		for row := 1; row <= window; row++ {
			if consider(row) {
				break
			}
		}
	}

	if bestScore < l.MinHeaderMatches {
		return Location{}, fmt.Errorf("%w: no header row within the first %d rows matched the %q vocabulary",
			statement.ErrUnrecognizedLayout, l.SearchWindow, l.Name)
	}

	for f := range l.Vocabulary {
		if !bestHeaders.Has(f) && !l.IsOptional(f) {
			return Location{}, fmt.Errorf("%w: header row %d is missing required column %q",
				statement.ErrUnrecognizedLayout, bestRow, f)
		}
	}

	loc := Location{
		HeaderRow: bestRow,
		DataStart: bestRow + l.DataStartOffset,
		DataEnd:   g.Rows(),
		Headers:   bestHeaders,
	}

	if marker := findMarkerRow(g, l.SummaryMarker, loc.DataStart); marker > 0 {
		loc.DataEnd = marker - l.SummaryGap
	}
	if loc.DataEnd < loc.DataStart {
		loc.DataEnd = loc.DataStart - 1 // empty region, extraction yields nothing
	}

	return loc, nil
}

// mapRow scores one candidate row, building the field→column map it would
// produce as header. Duplicate matches for the same field keep the last
// column, per the HeaderMap contract.
func mapRow(g *sheet.Grid, row int, l Layout) statement.HeaderMap {
	headers := statement.HeaderMap{}
	for col := 1; col <= g.Cols(); col++ {
		key := textnorm.FoldKey(g.Cell(row, col))
		if key == "" {
			continue
		}
		if f, ok := matchField(key, l); ok {
			headers[f] = col
		}
	}
	return headers
}

// matchField resolves a folded header cell to a canonical field: exact alias
// equality first, then a bounded fuzzy rank for slightly misspelled exports.
func matchField(key string, l Layout) (statement.Field, bool) {
	for f, aliases := range l.Vocabulary {
		for _, alias := range aliases {
			if key == alias {
				return f, true
			}
		}
	}
	bestRank := maxFuzzyRank + 1
	var bestField statement.Field
	for f, aliases := range l.Vocabulary {
		for _, alias := range aliases {
			if rank := fuzzy.RankMatchNormalizedFold(alias, key); rank >= 0 && rank < bestRank {
				bestRank, bestField = rank, f
			}
		}
	}
	if bestRank <= maxFuzzyRank {
		return bestField, true
	}
	return "", false
}

// findMarkerRow returns the first row at or after start whose folded text
// matches the summary marker, or 0 when the sheet has none.
func findMarkerRow(g *sheet.Grid, marker string, start int) int {
	if marker == "" {
		return 0
	}
	for row := start; row <= g.Rows(); row++ {
		for col := 1; col <= g.Cols(); col++ {
			cell := g.Cell(row, col)
			if cell == "" {
				continue
			}
			if textnorm.FoldKey(cell) == marker {
				return row
			}
		}
	}
	return 0
}
