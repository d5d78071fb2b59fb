package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"brewboard/internal/core"
)

func seed() []core.Transaction {
	return []core.Transaction{{
		ID:        1,
		Date:      core.NewDate(2023, 1, 5),
		Time:      core.Clock{Hour: 8},
		Qty:       2,
		UnitPrice: decimal.RequireFromString("3.50"),
		Store:     "A",
		Product:   "Latte",
	}}
}

func TestReadAllReturnsCopy(t *testing.T) {
	src := New(seed())
	ctx := context.Background()

	first, err := src.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	first[0].Store = "mutated"

	second, err := src.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if second[0].Store != "A" {
		t.Fatalf("caller mutation leaked into the source: %+v", second[0])
	}
}

func TestReadAllRejectsInvalidSeed(t *testing.T) {
	bad := seed()
	bad[0].Qty = 0
	src := New(bad)

	_, err := src.ReadAll(context.Background())
	var dfe *core.DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
	if !errors.Is(err, core.ErrInvalidQty) {
		t.Fatalf("expected ErrInvalidQty, got %v", err)
	}
}

func TestReplaceChangesSignature(t *testing.T) {
	src := New(seed())
	ctx := context.Background()

	sig1, err := src.Signature(ctx)
	if err != nil {
		t.Fatalf("signature: %v", err)
	}
	next := seed()
	next[0].ID = 2
	next[0].Product = "Tea"
	src.Replace(next)

	sig2, err := src.Signature(ctx)
	if err != nil || sig1 == sig2 {
		t.Fatalf("replaced dataset must change the signature (err=%v)", err)
	}
}
