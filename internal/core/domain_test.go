package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:        1,
		Date:      NewDate(2023, 1, 5),
		Time:      Clock{Hour: 8},
		Qty:       2,
		UnitPrice: decimal.RequireFromString("3.50"),
		Store:     "A",
		Product:   "Latte",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		mutate func(*Transaction)
		want   error
	}{
		{func(x *Transaction) { x.Date = Date{} }, nil},
		{func(x *Transaction) { x.Time.Hour = 24 }, nil},
		{func(x *Transaction) { x.Qty = 0 }, ErrInvalidQty},
		{func(x *Transaction) { x.Qty = -1 }, ErrInvalidQty},
		{func(x *Transaction) { x.UnitPrice = decimal.RequireFromString("-0.01") }, ErrInvalidPrice},
		{func(x *Transaction) { x.Store = "" }, ErrEmptyStore},
		{func(x *Transaction) { x.Product = "" }, ErrEmptyProduct},
	}
	for i, tc := range bads {
		bad := good
		tc.mutate(&bad)
		err := bad.Validate()
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestDataFormatError(t *testing.T) {
	inner := ErrBadDate
	err := &DataFormatError{Source: "sales.xlsx", Row: 3, Column: "transaction_date", Err: inner}
	if !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected unwrap to reach %v", inner)
	}
	msg := err.Error()
	if msg == "" || msg == inner.Error() {
		t.Fatalf("expected contextual message, got %q", msg)
	}
}
