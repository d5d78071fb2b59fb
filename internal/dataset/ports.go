// Package dataset defines the ports for transaction-export sources and the
// process-wide memoized loader that turns a source into the enriched table.
package dataset

import (
	"context"

	"brewboard/internal/core"
)

// Source reads a transaction export. Implementations must be read-only:
// two ReadAll calls against an unchanged source yield identical tables.
type Source interface {
	// ReadAll returns every transaction in the export. A missing source,
	// missing required columns, or an uncoercible cell fail with a
	// *core.DataFormatError and no partial result.
	ReadAll(ctx context.Context) ([]core.Transaction, error)

	// Signature identifies the current content of the source (content hash,
	// file stamp, or revision). Loaders use it as the memoization key:
	// same signature, same table.
	Signature(ctx context.Context) (string, error)
}

// RequiredColumns is the exact base schema of an export. Additional columns
// are ignored; a missing one is a DataFormatError.
var RequiredColumns = []string{
	"transaction_id",
	"transaction_date",
	"transaction_time",
	"transaction_qty",
	"unit_price",
	"store_location",
	"product_type",
}
