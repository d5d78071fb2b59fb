package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"brewboard/internal/core"
)

// countingSource wraps a fixed dataset and counts reads.
type countingSource struct {
	txs   []core.Transaction
	sig   string
	reads int
	fail  error
}

func (s *countingSource) ReadAll(context.Context) ([]core.Transaction, error) {
	s.reads++
	if s.fail != nil {
		return nil, s.fail
	}
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

func (s *countingSource) Signature(context.Context) (string, error) { return s.sig, nil }

func fixture() []core.Transaction {
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

func TestLoaderMemoizesBySignature(t *testing.T) {
	src := &countingSource{txs: fixture(), sig: "v1"}
	l := NewLoader(src)
	ctx := context.Background()

	first, err := l.Table(ctx)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	second, err := l.Table(ctx)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if src.reads != 1 {
		t.Fatalf("expected a single read, got %d", src.reads)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("unexpected table sizes %d / %d", len(first), len(second))
	}
}

func TestLoaderReloadsOnSignatureChange(t *testing.T) {
	src := &countingSource{txs: fixture(), sig: "v1"}
	l := NewLoader(src)
	ctx := context.Background()

	if _, err := l.Table(ctx); err != nil {
		t.Fatalf("table: %v", err)
	}
	src.sig = "v2"
	if _, err := l.Table(ctx); err != nil {
		t.Fatalf("table: %v", err)
	}
	if src.reads != 2 {
		t.Fatalf("expected reload on new signature, reads=%d", src.reads)
	}
}

func TestLoaderInvalidateForcesReload(t *testing.T) {
	src := &countingSource{txs: fixture(), sig: "v1"}
	l := NewLoader(src)
	ctx := context.Background()

	if _, err := l.Table(ctx); err != nil {
		t.Fatalf("table: %v", err)
	}
	l.Invalidate()
	if _, err := l.Table(ctx); err != nil {
		t.Fatalf("table: %v", err)
	}
	if src.reads != 2 {
		t.Fatalf("expected reload after invalidate, reads=%d", src.reads)
	}
}

func TestSnapshotExposesCurrentSignature(t *testing.T) {
	src := &countingSource{txs: fixture(), sig: "v1"}
	l := NewLoader(src)
	ctx := context.Background()

	_, sig, err := l.Snapshot(ctx)
	if err != nil || sig != "v1" {
		t.Fatalf("expected signature v1, got %q (err=%v)", sig, err)
	}
	src.sig = "v2"
	_, sig, err = l.Snapshot(ctx)
	if err != nil || sig != "v2" {
		t.Fatalf("expected signature v2 after content change, got %q (err=%v)", sig, err)
	}
}

func TestLoaderFailedLoadServesNothingStale(t *testing.T) {
	src := &countingSource{txs: fixture(), sig: "v1"}
	l := NewLoader(src)
	ctx := context.Background()

	if _, err := l.Table(ctx); err != nil {
		t.Fatalf("table: %v", err)
	}
	src.sig = "v2"
	src.fail = errors.New("boom")
	if _, err := l.Table(ctx); err == nil {
		t.Fatalf("expected load failure")
	}
	// Recovery: the source works again, a fresh read happens.
	src.fail = nil
	rows, err := l.Table(ctx)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected recovery, got rows=%d err=%v", len(rows), err)
	}
}
