// Package store defines the ports the reporting engine consumes.
// Adapters live in the memory and storage packages.
package store

import (
	"context"
	"time"

	"bilancio/internal/core"
)

type (
	// TransactionReader supplies the raw transactions of an account inside a
	// date range, inclusive of from and to at day granularity. An unknown
	// account yields core.ErrAccountNotFound.
	TransactionReader interface {
		QueryTransactions(ctx context.Context, accountID string, from, to time.Time) ([]core.Transaction, error)
	}

	// CategoryReader resolves category IDs to names in one batch. IDs that do
	// not resolve to a live category are simply absent from the result.
	CategoryReader interface {
		QueryCategories(ctx context.Context, ids []string) (map[string]string, error)
	}

	// TransactionWriter is the thin ingest path. It mints an ID when the
	// transaction carries none and returns the stored ID.
	TransactionWriter interface {
		Append(ctx context.Context, tx core.Transaction) (string, error)
	}
)
