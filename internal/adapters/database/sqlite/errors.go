package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// translateError maps SQLite result codes onto the ledger error taxonomy. Errors it
// does not recognise are returned unchanged.
func translateError(err error) error {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return err
	}

	code := se.Code()
	msg := se.Error()
	switch primary := code & 0xff; {
	case primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED:
		return fmt.Errorf("%w: %v", apperrors.ErrStorageBusy, err)
	case primary != sqlite3.SQLITE_CONSTRAINT:
		return err
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
		strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", apperrors.ErrUnknownAccount, err)
	case code == sqlite3.SQLITE_CONSTRAINT_CHECK || strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	return err
}
