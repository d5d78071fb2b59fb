// Package memory provides an in-memory dataset source, used as the default
// backend for local runs and as the fixture source in tests.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"brewboard/internal/core"
	"brewboard/internal/dataset"
)

type Source struct {
	mu  sync.Mutex
	txs []core.Transaction
}

var _ dataset.Source = (*Source)(nil)

func New(txs []core.Transaction) *Source {
	s := &Source{}
	s.txs = append(s.txs, txs...)
	return s
}

// ReadAll returns a copy of the seeded transactions. Seeds are held to the
// same schema invariants as a real export.
func (s *Source) ReadAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	for i, t := range out {
		if err := t.Validate(); err != nil {
			return nil, &core.DataFormatError{Source: "memory", Row: i + 1, Err: err}
		}
	}
	return out, nil
}

// Signature hashes the seeded rows so Replace invalidates loader memos.
func (s *Source) Signature(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := sha256.New()
	for _, t := range s.txs {
		fmt.Fprintf(h, "%d|%s|%02d:%02d:%02d|%d|%s|%s|%s\n",
			t.ID, t.Date.Format("2006-01-02"),
			t.Time.Hour, t.Time.Minute, t.Time.Second,
			t.Qty, t.UnitPrice.String(), t.Store, t.Product)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Replace swaps the seeded dataset, simulating a re-imported export.
func (s *Source) Replace(txs []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = make([]core.Transaction, len(txs))
	copy(s.txs, txs)
}
