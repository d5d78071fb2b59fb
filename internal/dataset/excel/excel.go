// Package excel reads a transaction export from an xlsx workbook.
package excel

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"brewboard/internal/core"
	"brewboard/internal/dataset"
)

type Source struct {
	path  string
	sheet string // empty means first sheet
}

var _ dataset.Source = (*Source)(nil)

func New(path, sheet string) *Source {
	return &Source{path: path, sheet: sheet}
}

// ReadAll opens the workbook and coerces every data row. The header row maps
// column positions, so column order in the export does not matter; columns
// beyond the required set are ignored.
func (s *Source) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, &core.DataFormatError{Source: s.path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &core.DataFormatError{Source: s.path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, &core.DataFormatError{Source: s.path, Err: errors.New("empty sheet")}
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, &core.DataFormatError{Source: s.path, Err: err}
	}

	txs := make([]core.Transaction, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row := rows[i]
		if blank(row) {
			continue
		}
		tx, err := parseRow(row, cols)
		if err != nil {
			var dfe *core.DataFormatError
			if errors.As(err, &dfe) {
				dfe.Source = s.path
				dfe.Row = i + 1
				return nil, dfe
			}
			return nil, &core.DataFormatError{Source: s.path, Row: i + 1, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Signature is the content hash of the workbook file, so a rewritten export
// changes the loader's memoization key even when the path stays the same.
func (s *Source) Signature(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", &core.DataFormatError{Source: s.path, Err: fmt.Errorf("read file: %w", err)}
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for j, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = j
	}
	var missing []string
	for _, name := range dataset.RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (core.Transaction, error) {
	cell := func(name string) string {
		j := cols[name]
		if j >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[j])
	}
	fail := func(column string, err error) (core.Transaction, error) {
		return core.Transaction{}, &core.DataFormatError{Column: column, Err: err}
	}

	id, err := core.ParseInt(cell("transaction_id"))
	if err != nil {
		return fail("transaction_id", err)
	}
	date, err := core.ParseDate(cell("transaction_date"))
	if err != nil {
		return fail("transaction_date", err)
	}
	clock, err := core.ParseClock(cell("transaction_time"))
	if err != nil {
		return fail("transaction_time", err)
	}
	qty, err := core.ParseInt(cell("transaction_qty"))
	if err != nil {
		return fail("transaction_qty", err)
	}
	price, err := core.ParsePrice(cell("unit_price"))
	if err != nil {
		return fail("unit_price", err)
	}

	tx := core.Transaction{
		ID:        id,
		Date:      date,
		Time:      clock,
		Qty:       qty,
		UnitPrice: price,
		Store:     cell("store_location"),
		Product:   cell("product_type"),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, &core.DataFormatError{Err: err}
	}
	return tx, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
