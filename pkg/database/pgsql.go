package database

import (
	"context"
	"fmt"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new PostgreSQL connection pool and verifies it with a ping.
func NewPgxPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("%w: database URL cannot be empty", apperrors.ErrStorageUnavailable)
	}

	// pgxpool.ParseConfig also honours PGHOST, PGUSER, etc. for fields the URL omits.
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse database config from URL: %v", apperrors.ErrStorageUnavailable, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %v", apperrors.ErrStorageUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", apperrors.ErrStorageUnavailable, err)
	}

	return pool, nil
}
