package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// SQLiteDSN builds the connection string for a ledger file. Foreign keys are switched on
// for every connection and transactions take the write lock when they begin.
func SQLiteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_txlock", "immediate")
	return "file:" + filepath.ToSlash(path) + "?" + q.Encode()
}

// ensureParentDir creates the directory that will hold the data file.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create data directory %s: %v", apperrors.ErrStorageUnavailable, dir, err)
	}
	return nil
}

// OpenSQLite opens the ledger file, creating it and its parent directory when absent.
// The handle allows a single connection: this process is the only writer it manages,
// and SQLite's file lock serializes writers from other processes.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", apperrors.ErrStorageUnavailable, path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping %s: %v", apperrors.ErrStorageUnavailable, path, err)
	}
	return db, nil
}
