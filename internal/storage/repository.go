// Package storage holds the SQLite form of a transaction export. It serves
// two roles: a read-only dataset source for the dashboard server, and the
// write target of the importer.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"brewboard/internal/core"
	"brewboard/internal/dataset"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ dataset.Source = (*Repository)(nil)

func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadAll implements dataset.Source. Cell coercion reuses the same strict
// parsers as the spreadsheet sources, so a hand-edited database row fails
// the load the same way a bad cell would.
func (r *Repository) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT transaction_id, transaction_date, transaction_time,
		       transaction_qty, unit_price, store_location, product_type
		FROM transactions
		ORDER BY rowid`)
	if err != nil {
		return nil, &core.DataFormatError{Source: "sqlite", Err: fmt.Errorf("query transactions: %w", err)}
	}
	defer rows.Close()

	var txs []core.Transaction
	n := 0
	for rows.Next() {
		n++
		var (
			id, qty              int64
			dateS, timeS, priceS string
			store, product       string
		)
		if err := rows.Scan(&id, &dateS, &timeS, &qty, &priceS, &store, &product); err != nil {
			return nil, &core.DataFormatError{Source: "sqlite", Row: n, Err: fmt.Errorf("scan: %w", err)}
		}
		date, err := core.ParseDate(dateS)
		if err != nil {
			return nil, &core.DataFormatError{Source: "sqlite", Row: n, Column: "transaction_date", Err: err}
		}
		clock, err := core.ParseClock(timeS)
		if err != nil {
			return nil, &core.DataFormatError{Source: "sqlite", Row: n, Column: "transaction_time", Err: err}
		}
		price, err := core.ParsePrice(priceS)
		if err != nil {
			return nil, &core.DataFormatError{Source: "sqlite", Row: n, Column: "unit_price", Err: err}
		}
		tx := core.Transaction{
			ID: id, Date: date, Time: clock, Qty: qty,
			UnitPrice: price, Store: store, Product: product,
		}
		if err := tx.Validate(); err != nil {
			return nil, &core.DataFormatError{Source: "sqlite", Row: n, Err: err}
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.DataFormatError{Source: "sqlite", Err: err}
	}
	return txs, nil
}

// Signature implements dataset.Source: the signature of the most recent
// import, so re-importing the same workbook keeps loader memos valid.
func (r *Repository) Signature(ctx context.Context) (string, error) {
	var sig string
	err := r.db.QueryRowContext(ctx,
		`SELECT signature FROM imports ORDER BY id DESC LIMIT 1`).Scan(&sig)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil // empty database, nothing imported yet
	}
	if err != nil {
		return "", fmt.Errorf("read import signature: %w", err)
	}
	return sig, nil
}

// ReplaceAll swaps the stored export for a new one in a single transaction
// and records the import signature. Used by the importer only; the server
// never writes.
func (r *Repository) ReplaceAll(ctx context.Context, txs []core.Transaction, signature string) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (transaction_id, transaction_date, transaction_time,
		                          transaction_qty, unit_price, store_location, product_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		_, err := stmt.ExecContext(ctx,
			t.ID,
			t.Date.Format("2006-01-02"),
			fmt.Sprintf("%02d:%02d:%02d", t.Time.Hour, t.Time.Minute, t.Time.Second),
			t.Qty,
			t.UnitPrice.String(),
			t.Store,
			t.Product,
		)
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}

	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO imports (signature, row_count) VALUES (?, ?)`,
		signature, len(txs)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Export imported", "rows", len(txs), "signature", signature)
	return nil
}
