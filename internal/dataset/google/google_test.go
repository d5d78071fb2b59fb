package google

import (
	"errors"
	"strings"
	"testing"

	"brewboard/internal/core"
)

func TestMapColumns(t *testing.T) {
	t.Run("maps required columns case-insensitively", func(t *testing.T) {
		header := []string{"Transaction_ID", "transaction_date", "TRANSACTION_TIME", "transaction_qty", "store_location", "product_type", "unit_price", "extra"}
		cols, err := mapColumns(header)
		if err != nil {
			t.Fatalf("mapColumns() error = %v", err)
		}
		if cols["transaction_id"] != 0 {
			t.Errorf("transaction_id index = %d, want 0", cols["transaction_id"])
		}
		if cols["unit_price"] != 6 {
			t.Errorf("unit_price index = %d, want 6", cols["unit_price"])
		}
	})

	t.Run("reports missing columns", func(t *testing.T) {
		_, err := mapColumns([]string{"transaction_id", "transaction_date"})
		if err == nil {
			t.Fatal("mapColumns() error = nil, want missing columns error")
		}
		if !strings.Contains(err.Error(), "transaction_time") {
			t.Errorf("error %q does not name transaction_time", err)
		}
	})
}

func TestParseRow(t *testing.T) {
	cols, err := mapColumns([]string{"transaction_id", "transaction_date", "transaction_time", "transaction_qty", "store_location", "product_type", "unit_price"})
	if err != nil {
		t.Fatalf("mapColumns() error = %v", err)
	}

	t.Run("valid row", func(t *testing.T) {
		tx, err := parseRow([]string{"42", "2023-04-01", "08:15:00", "2", "Astoria", "Coffee", "3.50"}, cols)
		if err != nil {
			t.Fatalf("parseRow() error = %v", err)
		}
		if tx.ID != 42 {
			t.Errorf("ID = %d, want 42", tx.ID)
		}
		if tx.Store != "Astoria" || tx.Product != "Coffee" {
			t.Errorf("Store/Product = %q/%q", tx.Store, tx.Product)
		}
		if tx.UnitPrice.String() != "3.5" {
			t.Errorf("UnitPrice = %s, want 3.5", tx.UnitPrice)
		}
	})

	t.Run("invalid row fails validation", func(t *testing.T) {
		_, err := parseRow([]string{"42", "2023-04-01", "08:15:00", "0", "Astoria", "Coffee", "3.50"}, cols)
		if !errors.Is(err, core.ErrInvalidQty) {
			t.Fatalf("parseRow() error = %v, want ErrInvalidQty", err)
		}
		_, err = parseRow([]string{"42", "2023-04-01", "08:15:00", "2", "", "Coffee", "3.50"}, cols)
		if !errors.Is(err, core.ErrEmptyStore) {
			t.Fatalf("parseRow() error = %v, want ErrEmptyStore", err)
		}
	})

	t.Run("bad cell names the column", func(t *testing.T) {
		_, err := parseRow([]string{"42", "2023-04-01", "8am", "2", "Astoria", "Coffee", "3.50"}, cols)
		var dfe *core.DataFormatError
		if !errors.As(err, &dfe) {
			t.Fatalf("parseRow() error = %v, want *core.DataFormatError", err)
		}
		if dfe.Column != "transaction_time" {
			t.Errorf("Column = %q, want transaction_time", dfe.Column)
		}
	})
}

func TestToStrings(t *testing.T) {
	got := toStrings([]interface{}{" 42 ", 3.5, nil, "x"})
	want := []string{"42", "3.5", "<nil>", "x"}
	if len(got) != len(want) {
		t.Fatalf("toStrings() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("toStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
