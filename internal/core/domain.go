package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Date is a calendar date; the time-of-day component is always midnight UTC.
	Date struct {
		time.Time
	}

	// Clock is the wall-clock time of a sale, parsed from a strict HH:MM:SS value.
	Clock struct {
		Hour   int
		Minute int
		Second int
	}

	// Transaction is one raw row of the sales export.
	Transaction struct {
		ID        int64
		Date      Date
		Time      Clock
		Qty       int64
		UnitPrice decimal.Decimal
		Store     string
		Product   string
	}

	// Row is a Transaction plus the derived calendar/time features. Derived
	// fields are pure functions of the base fields, computed once at load
	// time; a Row is never mutated afterwards.
	Row struct {
		Transaction
		TotalSales  decimal.Decimal
		Hour        int
		Day         int
		DayOfWeek   string
		WeekOfMonth int
		Month       string // YYYY-MM
		MonthName   string
		DayPart     string
	}
)

var (
	ErrInvalidQty   = errors.New("invalid quantity")
	ErrInvalidPrice = errors.New("invalid unit price")
	ErrEmptyStore   = errors.New("empty store location")
	ErrEmptyProduct = errors.New("empty product type")
)

// DataFormatError reports an unusable source: a missing or unreadable
// export, missing required columns, or a cell that does not coerce.
// Fatal to the load step; no partial table is ever produced.
type DataFormatError struct {
	Source string // path or identifier of the export
	Row    int    // 1-based source row, 0 when not row-specific
	Column string
	Err    error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("data format: %s row %d column %q: %v", e.Source, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("data format: %s column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("data format: %s: %v", e.Source, e.Err)
	}
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (c Clock) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("hour %d out of range", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("minute %d out of range", c.Minute)
	}
	if c.Second < 0 || c.Second > 59 {
		return fmt.Errorf("second %d out of range", c.Second)
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Time.Validate(); err != nil {
		return err
	}
	if t.Qty <= 0 {
		return ErrInvalidQty
	}
	if t.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if t.Store == "" {
		return ErrEmptyStore
	}
	if t.Product == "" {
		return ErrEmptyProduct
	}
	return nil
}
