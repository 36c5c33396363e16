package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
)

// BaseRepository provides transaction handling shared by the SQLite repositories.
type BaseRepository struct {
	DB *sql.DB
}

// Begin starts a new database transaction. The connection is opened with
// _txlock=immediate, so the write lock is taken here rather than on first write.
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", translateError(err))
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", translateError(err))
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx runs fn inside a single SQLite transaction.
func (r *BaseRepository) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx) // no-op once committed

	if err := fn(ctx, &ledgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(tx)
}
