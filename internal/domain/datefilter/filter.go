// Package datefilter restricts extracted records to an inclusive date range.
package datefilter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

// Range is an inclusive day range. Endpoints are compared at day
// granularity; the time of day on a record is irrelevant.
type Range struct {
	From time.Time
	To   time.Time
}

// rangeLayouts accepted by ParseRange for each endpoint.
var rangeLayouts = []string{"02/01/2006", "2/1/2006", "2006-01-02"}

// separators accepted between the endpoints of a free-form range string.
var rangeSeparators = []string{" - ", " a ", " al ", "–", "—"}

// ParseRange reads a free-form "dd/mm/yyyy - dd/mm/yyyy" string, tolerating
// the separators people actually type.
func ParseRange(s string) (*Range, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, nil
	}
	for _, sep := range rangeSeparators {
		parts := strings.SplitN(text, sep, 2)
		if len(parts) != 2 {
			continue
		}
		from, err1 := parseEndpoint(parts[0])
		to, err2 := parseEndpoint(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}
		return NewRange(from, to), nil
	}
	return nil, fmt.Errorf("unrecognized date range %q", s)
}

func parseEndpoint(s string) (time.Time, error) {
	text := strings.TrimSpace(s)
	for _, layout := range rangeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

// NewRange builds a normalized range: swapped endpoints are reordered so the
// caller never has to care which side is earlier.
func NewRange(a, b time.Time) *Range {
	a, b = day(a), day(b)
	if b.Before(a) {
		a, b = b, a
	}
	return &Range{From: a, To: b}
}

// Contains reports whether t falls inside the range, inclusive at both ends.
func (r *Range) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(r.From) && !d.After(r.To)
}

func (r *Range) String() string {
	return r.From.Format("02/01/2006") + " - " + r.To.Format("02/01/2006")
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Filter keeps the records inside r, returning the survivors and how many
// were excluded. A nil range keeps everything. Records whose date never
// parsed are kept unless dropUnparsable is set; dropping silently is how
// movements go missing, so the conservative default is to keep.
func Filter(records []*statement.TransactionRecord, r *Range, dropUnparsable bool) ([]*statement.TransactionRecord, int) {
	if r == nil {
		return records, 0
	}

	kept := make([]*statement.TransactionRecord, 0, len(records))
	excluded := 0
	for _, rec := range records {
		if !rec.HasDate() {
			if dropUnparsable {
				excluded++
				continue
			}
			kept = append(kept, rec)
			continue
		}
		if !r.Contains(rec.Date) {
			excluded++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, excluded
}
