package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func tx(id int64, date Date, hour int, qty int64, price, store, product string) Transaction {
	p, _ := ParsePrice(price)
	return Transaction{
		ID:        id,
		Date:      date,
		Time:      Clock{Hour: hour},
		Qty:       qty,
		UnitPrice: p,
		Store:     store,
		Product:   product,
	}
}

func TestEnrichDerivedFields(t *testing.T) {
	// 2023-01-05 was a Thursday.
	rows := Enrich([]Transaction{tx(1, NewDate(2023, 1, 5), 8, 2, "3.50", "A", "Latte")})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.TotalSales.String() != "7" {
		t.Fatalf("total sales: expected 7, got %s", r.TotalSales)
	}
	if r.Hour != 8 || r.Day != 5 || r.WeekOfMonth != 1 {
		t.Fatalf("unexpected hour/day/week: %d/%d/%d", r.Hour, r.Day, r.WeekOfMonth)
	}
	if r.DayOfWeek != "Thursday" {
		t.Fatalf("day of week: expected Thursday, got %s", r.DayOfWeek)
	}
	if r.Month != "2023-01" || r.MonthName != "January" {
		t.Fatalf("month labels: got %s / %s", r.Month, r.MonthName)
	}
	if r.DayPart != Morning {
		t.Fatalf("day part: expected Morning, got %s", r.DayPart)
	}
}

// total_sales must equal unit_price * qty exactly, with no rounding.
func TestEnrichTotalSalesExact(t *testing.T) {
	cases := []struct {
		price string
		qty   int64
		want  string
	}{
		{"3.50", 2, "7"},
		{"5.00", 1, "5"},
		{"0.333", 3, "0.999"},
		{"0", 4, "0"},
	}
	for _, tc := range cases {
		r := Enrich([]Transaction{tx(1, NewDate(2023, 6, 1), 12, tc.qty, tc.price, "A", "P")})[0]
		want, _ := decimal.NewFromString(tc.want)
		if !r.TotalSales.Equal(want) {
			t.Fatalf("%s x %d: expected %s, got %s", tc.price, tc.qty, tc.want, r.TotalSales)
		}
	}
}

func TestEnrichWeekOfMonth(t *testing.T) {
	cases := []struct {
		day  int
		want int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {28, 4}, {29, 5}, {31, 5},
	}
	for _, tc := range cases {
		r := Enrich([]Transaction{tx(1, NewDate(2023, 1, tc.day), 9, 1, "1", "A", "P")})[0]
		if r.WeekOfMonth != tc.want {
			t.Fatalf("day %d: expected week %d, got %d", tc.day, tc.want, r.WeekOfMonth)
		}
	}
}

func TestEnrichPreservesCountAndOrder(t *testing.T) {
	txs := []Transaction{
		tx(1, NewDate(2023, 1, 5), 8, 2, "3.50", "A", "Latte"),
		tx(2, NewDate(2023, 1, 5), 13, 1, "5.00", "B", "Mocha"),
		tx(3, NewDate(2023, 2, 1), 23, 1, "2.00", "A", "Tea"),
	}
	rows := Enrich(txs)
	if len(rows) != len(txs) {
		t.Fatalf("expected %d rows, got %d", len(txs), len(rows))
	}
	for i := range rows {
		if rows[i].ID != txs[i].ID {
			t.Fatalf("row %d: order not preserved", i)
		}
	}
}
