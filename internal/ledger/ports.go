package ledger

import (
	"context"
	"errors"

	"bahtbot/internal/core"
)

// Ports for outbound row-store adapters. The backing store is an
// append-only table: row 1 is a header, every later row one transaction.
type (
	RowReader interface {
		// ReadAll returns every transaction row in append order, header
		// excluded. Rows whose fields fail to parse are returned with zero
		// values rather than dropped, so row counts stay faithful.
		ReadAll(ctx context.Context) ([]core.Transaction, error)
	}

	// RowAppender appends a single row. Appending is the only mutating
	// operation and it is not idempotent: retrying after an ambiguous
	// transport error may duplicate a row, so callers never retry.
	RowAppender interface {
		Append(ctx context.Context, t core.Transaction) error
	}

	// BalanceReader reads the running balance of the newest row without
	// scanning the whole table. An empty ledger has balance 0.
	BalanceReader interface {
		LastBalance(ctx context.Context) (int64, error)
	}

	Store interface {
		RowReader
		RowAppender
		BalanceReader
	}
)

// ErrUnavailable is wrapped by adapters around any transport or auth
// failure. Callers report it to users as a generic persistence failure.
var ErrUnavailable = errors.New("ledger store unavailable")
