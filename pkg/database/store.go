package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Arshia-r-m/Financial-tracker/internal/adapters/database/pgsql"
	"github.com/Arshia-r-m/Financial-tracker/internal/adapters/database/sqlite"
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
	"github.com/Arshia-r-m/Financial-tracker/pkg/config"
)

// Store is an open, migrated ledger store. Close releases it; after Close the
// repositories must not be used.
type Store struct {
	Repositories portsrepo.RepositoryProvider
	closeFn      func()
}

// Close releases the underlying connections. It is safe to call more than once.
func (s *Store) Close() {
	if s == nil || s.closeFn == nil {
		return
	}
	s.closeFn()
	s.closeFn = nil
}

// OpenStore opens the store selected by cfg.Driver and brings its schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := MigrateSQLite(cfg.DBPath, logger); err != nil {
			return nil, err
		}
		db, err := OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("SQLite ledger opened", slog.String("path", cfg.DBPath))
		return &Store{
			Repositories: sqlite.NewRepositoryProvider(db),
			closeFn: func() {
				if err := db.Close(); err != nil {
					logger.Warn("Failed to close SQLite ledger", slog.String("error", err.Error()))
				}
			},
		}, nil

	case config.DriverPostgres:
		if err := MigratePostgres(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		pool, err := NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("PostgreSQL connection pool established")
		return &Store{
			Repositories: pgsql.NewRepositoryProvider(pool),
			closeFn:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported ledger driver %q", cfg.Driver)
	}
}
