package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// MigrateSQLite brings the ledger file's schema up to date, creating the file and its
// parent directory when absent. Running it against an up-to-date file is a no-op.
func MigrateSQLite(path string, logger *slog.Logger) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	// A separate handle: the migrate driver closes it when done.
	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return fmt.Errorf("%w: failed to open %s for migrations: %v", apperrors.ErrStorageUnavailable, path, err)
	}
	defer db.Close()

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("%w: could not create sqlite driver instance for migrations: %v", apperrors.ErrStorageUnavailable, err)
	}
	return runMigrations("sqlite", driver, logger)
}

// MigratePostgres brings a PostgreSQL database's schema up to date.
func MigratePostgres(databaseURL string, logger *slog.Logger) error {
	// Open a temporary standard sql.DB connection for migrations, using the pgx stdlib
	// driver to stay compatible with the main pool.
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("%w: failed to open database connection for migrations: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("%w: failed to ping database for migrations: %v", apperrors.ErrStorageUnavailable, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%w: could not create postgres driver instance for migrations: %v", apperrors.ErrStorageUnavailable, err)
	}
	return runMigrations("postgres", driver, logger)
}

// runMigrations applies every embedded "up" migration for dialect.
func runMigrations(dialect string, driver migratedb.Driver, logger *slog.Logger) error {
	src, err := iofs.New(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("%w: could not read embedded %s migrations: %v", apperrors.ErrStorageUnavailable, dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return fmt.Errorf("%w: could not create migrate instance: %v", apperrors.ErrStorageUnavailable, err)
	}

	upErr := m.Up()

	// Close reports source and database errors separately.
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("%w: failed to apply migrations: %v", apperrors.ErrStorageUnavailable, upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("%w: migration source error: %v", apperrors.ErrStorageUnavailable, sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("%w: migration database error: %v", apperrors.ErrStorageUnavailable, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Debug("No new migrations to apply", slog.String("dialect", dialect))
	} else {
		logger.Info("Database migrations applied", slog.String("dialect", dialect))
	}
	return nil
}
