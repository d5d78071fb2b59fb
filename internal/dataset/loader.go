package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"brewboard/internal/core"
)

// Loader memoizes the enriched table for one source. The cache key is the
// source signature: a Table call re-reads only when the signature changed,
// and Invalidate drops the memo explicitly (e.g. on a refresh message).
// Memoization is an optimization, never a correctness requirement; callers
// only rely on "same source content, same table".
type Loader struct {
	src Source

	mu        sync.Mutex
	signature string
	rows      []core.Row
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Table returns the enriched table for the source's current content. The
// returned slice is shared read-only state: callers must filter through
// analytics.Apply (which copies) and never mutate rows in place.
func (l *Loader) Table(ctx context.Context) ([]core.Row, error) {
	rows, _, err := l.Snapshot(ctx)
	return rows, err
}

// Snapshot is Table plus the signature the table was loaded under. Callers
// that memoize derived results must key them by this signature, so nothing
// derived from superseded content ever survives a source change.
func (l *Loader) Snapshot(ctx context.Context) ([]core.Row, string, error) {
	sig, err := l.src.Signature(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("source signature: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rows != nil && l.signature == sig {
		return l.rows, sig, nil
	}

	txs, err := l.src.ReadAll(ctx)
	if err != nil {
		// A failed load never replaces a previous table with a partial one,
		// but it also must not serve stale data for changed content.
		l.rows = nil
		l.signature = ""
		return nil, "", err
	}
	rows := core.Enrich(txs)

	slog.InfoContext(ctx, "Enriched table loaded", "rows", len(rows), "signature", sig)
	l.signature = sig
	l.rows = rows
	return rows, sig, nil
}

// Invalidate drops the memoized table; the next Table call re-reads.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = nil
	l.signature = ""
}
