package pgsql

import (
	"errors"
	"fmt"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// translateError maps PostgreSQL SQLSTATE codes onto the ledger error taxonomy.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%w: %v", apperrors.ErrUnknownAccount, err)
	case "23514", "22003": // check_violation, numeric_value_out_of_range
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	case "40001", "40P01", "55P03": // serialization_failure, deadlock_detected, lock_not_available
		return fmt.Errorf("%w: %v", apperrors.ErrStorageBusy, err)
	}
	return err
}
