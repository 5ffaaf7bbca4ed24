package parse

import (
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet day-serial epoch (the 1900 date system with
// the Lotus leap-year bug already folded in, as both xls and xlsx use it).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"02/01/06",
	"2/1/2006",
}

// Date parses a date cell. It accepts the string date formats the bank
// exports use (day first), and bare numbers which are treated as day serials
// and bounded to years 1900–9999 for plausibility — serial 1 is not a
// statement date, it is a stray numeric cell. Returns the zero time and
// false when nothing matched; callers must keep that distinct from
// "filtered out".
func Date(value string) (time.Time, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(text, 64); err == nil {
		return FromSerial(serial)
	}

	return time.Time{}, false
}

// FromSerial converts a spreadsheet day serial to a calendar date, rejecting
// values outside the 1900–9999 year window.
func FromSerial(serial float64) (time.Time, bool) {
	t := serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	if t.Year() < 1900 || t.Year() > 9999 {
		return time.Time{}, false
	}
	return t, true
}

// ToSerial converts a calendar date back to its day serial. Round-trips with
// FromSerial at day granularity.
func ToSerial(t time.Time) float64 {
	return t.Sub(serialEpoch).Hours() / 24
}
