package repositories

import (
	"context"
)

// TxFunc is the body of a storage transaction. Returning an error rolls the whole
// transaction back.
type TxFunc func(ctx context.Context, tx LedgerTx) error

// TransactionManager runs a function inside a single atomic storage transaction.
type TransactionManager interface {
	// WithinTx begins a transaction, runs fn, and commits if fn returns nil.
	// Any error from fn or from commit leaves the store unchanged.
	WithinTx(ctx context.Context, fn TxFunc) error
}
