// Package core provides the sales domain model: raw transactions, the
// enriched row type, cell coercion, and the day-part calendar buckets.
package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrBadDate   = errors.New("unparseable date")
	ErrBadTime   = errors.New("unparseable time")
	ErrBadNumber = errors.New("unparseable number")
)

// Date layouts seen in real exports. Spreadsheet tools frequently rewrite
// the date column, so a short list of layouts is accepted; everything else
// is a DataFormatError upstream.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02/01/06",
}

// Excel serial dates count days from 1899-12-30.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate coerces a date cell. Accepts the layouts above plus Excel
// serial-date numbers; the result is truncated to midnight UTC.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrBadDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}
	return Date{}, ErrBadDate
}

// ParseClock coerces a time cell using the strict HH:MM:SS wall-clock format.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return Clock{}, ErrBadTime
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// ParsePrice coerces a decimal cell at full precision. Both dot and comma
// decimal separators are accepted; no rounding happens here.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrBadNumber
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrBadNumber
	}
	return d, nil
}

// ParseInt coerces an integer cell.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	return v, nil
}
