//go:build integration

package pgsql_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
	"github.com/Arshia-r-m/Financial-tracker/pkg/config"
	"github.com/Arshia-r-m/Financial-tracker/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer starts a disposable PostgreSQL container and returns its DSN.
func setupPostgresContainer(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func openPostgresRepo(t *testing.T) portsrepo.LedgerRepository {
	t.Helper()

	cfg := &config.Config{Driver: config.DriverPostgres, DatabaseURL: setupPostgresContainer(t)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := database.OpenStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	// Migrating an up-to-date database is a no-op.
	require.NoError(t, database.MigratePostgres(cfg.DatabaseURL, logger))

	return store.Repositories.LedgerRepo
}

func TestIntegration_Postgres_LedgerLifecycle(t *testing.T) {
	repo := openPostgresRepo(t)
	ctx := context.Background()

	var wallet *domain.Account
	err := repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		var err error
		wallet, err = tx.SaveAccount(ctx, domain.Account{Name: "Wallet", Balance: 100})
		return err
	})
	require.NoError(t, err)
	assert.Positive(t, wallet.ID)

	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.SaveAccount(ctx, domain.Account{Name: "Wallet"})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	var expenseID int64
	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		effect, err := tx.PostTransaction(ctx, domain.Transaction{
			Kind: domain.Expense, AccountName: "Wallet", Amount: 10, Date: "2024-01-01",
		})
		if err != nil {
			return err
		}
		expenseID = effect.Transaction.ID
		assert.Equal(t, int64(90), effect.Balance)
		return nil
	})
	require.NoError(t, err)

	acc, err := repo.FindAccountByName(ctx, "Wallet")
	require.NoError(t, err)
	assert.Equal(t, int64(90), acc.Balance)

	expenses, err := repo.ListTransactions(ctx, domain.Expense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, expenseID, expenses[0].ID)
	assert.Empty(t, expenses[0].Description)

	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.PostTransaction(ctx, domain.Transaction{
			Kind: domain.Income, AccountName: "Ghost", Amount: 10, Date: "2024-01-01",
		})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)

	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.PostTransaction(ctx, domain.Transaction{
			Kind: domain.Income, AccountName: "Wallet", Amount: math.MaxInt64, Date: "2024-01-01",
		})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	acc, err = repo.FindAccountByName(ctx, "Wallet")
	require.NoError(t, err)
	assert.Equal(t, int64(90), acc.Balance)

	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.RemoveTransaction(ctx, domain.Income, expenseID)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var removed *portsrepo.BalanceEffect
	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		var err error
		removed, err = tx.RemoveTransaction(ctx, domain.Expense, expenseID)
		return err
	})
	require.NoError(t, err)
	assert.True(t, removed.Applied)
	assert.Equal(t, int64(100), removed.Balance)

	err = repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.DeleteAccount(ctx, wallet.ID)
	})
	require.NoError(t, err)

	expenses, err = repo.ListTransactions(ctx, domain.Expense)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
