// Package google reads a transaction export published as a Google Sheet.
package google

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"brewboard/internal/core"
	"brewboard/internal/dataset"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ dataset.Source = (*Source)(nil)

// New creates a read-only Sheets source using Service Account credentials.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Source, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Source{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadAll fetches the sheet and coerces every data row. The first row is the
// header and maps column positions, the same contract as the workbook source.
func (s *Source) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &core.DataFormatError{Source: s.ref(), Err: errors.New("empty sheet")}
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, &core.DataFormatError{Source: s.ref(), Err: err}
	}

	txs := make([]core.Transaction, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		tx, err := parseRow(row, cols)
		if err != nil {
			var dfe *core.DataFormatError
			if errors.As(err, &dfe) {
				dfe.Source = s.ref()
				dfe.Row = i + 1
				return nil, dfe
			}
			return nil, &core.DataFormatError{Source: s.ref(), Row: i + 1, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Signature hashes the formatted cell values, so an edit anywhere in the sheet
// changes the loader's memoization key.
func (s *Source) Signature(ctx context.Context) (string, error) {
	rows, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, row := range rows {
		fmt.Fprintf(h, "%q\n", row)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (s *Source) fetch(ctx context.Context) ([][]string, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:Z", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	return out, nil
}

func (s *Source) ref() string {
	return fmt.Sprintf("sheets:%s/%s", s.spreadsheetID, s.sheetName)
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

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
