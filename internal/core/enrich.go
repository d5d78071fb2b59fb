package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Enrich derives the calendar/time features for every transaction and
// returns the enriched table. The row count always equals the input count
// and the input order is preserved. Enrich has no hidden state: the same
// transactions produce an identical table every time.
func Enrich(txs []Transaction) []Row {
	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, enrichOne(t))
	}
	return rows
}

func enrichOne(t Transaction) Row {
	day := t.Date.Day()
	return Row{
		Transaction: t,
		TotalSales:  t.UnitPrice.Mul(decimal.NewFromInt(t.Qty)),
		Hour:        t.Time.Hour,
		Day:         day,
		DayOfWeek:   t.Date.Weekday().String(),
		WeekOfMonth: (day-1)/7 + 1,
		Month:       MonthKey(t.Date),
		MonthName:   t.Date.Month().String(),
		DayPart:     DayPartFor(t.Time.Hour),
	}
}

// MonthKey renders the canonical zero-padded YYYY-MM label for a date.
func MonthKey(d Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Time.Month()))
}
