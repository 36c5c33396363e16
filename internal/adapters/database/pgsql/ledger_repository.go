package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for accounts and transactions.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// NewRepositoryProvider wires every PostgreSQL repository.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: NewLedgerRepository(dbPool),
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func tableFor(kind domain.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}
	return kind.Plural(), nil
}

// FindAccountByName retrieves an account by its unique name.
func (r *PgxLedgerRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	var acc domain.Account
	err := r.Pool.QueryRow(ctx, `SELECT id, name, balance FROM accounts WHERE name = $1;`, name).
		Scan(&acc.ID, &acc.Name, &acc.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", name, translateError(err))
	}
	return &acc, nil
}

// ListAccounts retrieves every account ordered by id.
func (r *PgxLedgerRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, name, balance FROM accounts ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", translateError(err))
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListTransactions retrieves every transaction of one kind ordered by id.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, kind domain.Kind) ([]domain.Transaction, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx, `SELECT id, account_name, amount, date, description FROM `+table+` ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, translateError(err))
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn := domain.Transaction{Kind: kind}
		var description sql.NullString
		if err := rows.Scan(&txn.ID, &txn.AccountName, &txn.Amount, &txn.Date, &description); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		txn.Description = description.String
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}
	return txns, nil
}

// ledgerTx implements portsrepo.LedgerTx over a pgx.Tx.
type ledgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO accounts (name, balance) VALUES ($1, $2) RETURNING id;`,
		account.Name, account.Balance).Scan(&account.ID)
	if err != nil {
		err = translateError(err)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account named %s already exists", apperrors.ErrDuplicate, account.Name)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", account.Name, err)
	}
	return &account, nil
}

func (t *ledgerTx) DeleteAccount(ctx context.Context, accountID int64) error {
	cmdTag, err := t.tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (t *ledgerTx) lockAccount(ctx context.Context, name string) (*domain.Account, error) {
	var acc domain.Account
	err := t.tx.QueryRow(ctx, `SELECT id, name, balance FROM accounts WHERE name = $1 FOR UPDATE;`, name).
		Scan(&acc.ID, &acc.Name, &acc.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", name, translateError(err))
	}
	return &acc, nil
}

// setBalance applies delta to an account locked by lockAccount.
func (t *ledgerTx) setBalance(ctx context.Context, acc *domain.Account, delta int64) (int64, error) {
	balance, err := accounting.ApplyDelta(acc.Balance, delta)
	if err != nil {
		return 0, fmt.Errorf("account %s: %w", acc.Name, err)
	}

	cmdTag, err := t.tx.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE id = $2;`, balance, acc.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance for account %s: %w", acc.Name, translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: account %s disappeared while locked", apperrors.ErrConsistencyViolation, acc.Name)
	}
	return balance, nil
}

func (t *ledgerTx) PostTransaction(ctx context.Context, txn domain.Transaction) (*portsrepo.BalanceEffect, error) {
	table, err := tableFor(txn.Kind)
	if err != nil {
		return nil, err
	}
	delta, err := accounting.BalanceDelta(txn.Kind, txn.Amount, accounting.Post)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}

	acc, err := t.lockAccount(ctx, txn.AccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, txn.AccountName)
		}
		return nil, err
	}

	var description sql.NullString
	if txn.Description != "" {
		description = sql.NullString{String: txn.Description, Valid: true}
	}

	err = t.tx.QueryRow(ctx,
		`INSERT INTO `+table+` (account_name, amount, date, description) VALUES ($1, $2, $3, $4) RETURNING id;`,
		txn.AccountName, txn.Amount, txn.Date, description).Scan(&txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s for %s: %w", txn.Kind, txn.AccountName, translateError(err))
	}

	balance, err := t.setBalance(ctx, acc, delta)
	if err != nil {
		return nil, err
	}
	return &portsrepo.BalanceEffect{Transaction: txn, Delta: delta, Balance: balance, Applied: true}, nil
}

func (t *ledgerTx) RemoveTransaction(ctx context.Context, kind domain.Kind, transactionID int64) (*portsrepo.BalanceEffect, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{Kind: kind}
	var description sql.NullString
	err = t.tx.QueryRow(ctx,
		`DELETE FROM `+table+` WHERE id = $1 RETURNING id, account_name, amount, date, description;`,
		transactionID).Scan(&txn.ID, &txn.AccountName, &txn.Amount, &txn.Date, &description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, transactionID)
		}
		return nil, fmt.Errorf("failed to delete %s %d: %w", kind, transactionID, translateError(err))
	}
	txn.Description = description.String

	delta, err := accounting.BalanceDelta(kind, txn.Amount, accounting.Reverse)
	if err != nil {
		return nil, fmt.Errorf("%w: stored %s %d: %v", apperrors.ErrInvalidAmount, kind, txn.ID, err)
	}
	effect := &portsrepo.BalanceEffect{Transaction: txn, Delta: delta}

	acc, err := t.lockAccount(ctx, txn.AccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return effect, nil
		}
		return nil, err
	}
	if effect.Balance, err = t.setBalance(ctx, acc, delta); err != nil {
		return nil, err
	}
	effect.Applied = true
	return effect, nil
}
