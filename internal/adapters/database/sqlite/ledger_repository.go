package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils/accounting"
)

// SQLiteLedgerRepository stores accounts and transactions in a single SQLite file.
type SQLiteLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a ledger repository over an open SQLite handle whose
// schema has already been migrated.
func NewLedgerRepository(db *sql.DB) portsrepo.LedgerRepository {
	return &SQLiteLedgerRepository{BaseRepository: BaseRepository{DB: db}}
}

// NewRepositoryProvider wires every SQLite repository.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: NewLedgerRepository(db),
	}
}

var _ portsrepo.LedgerRepository = (*SQLiteLedgerRepository)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// tableFor returns the relation holding transactions of kind.
func tableFor(kind domain.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}
	return kind.Plural(), nil
}

func findAccountByName(ctx context.Context, q queryer, name string) (*domain.Account, error) {
	var acc domain.Account
	err := q.QueryRowContext(ctx, `SELECT id, name, balance FROM accounts WHERE name = ?`, name).
		Scan(&acc.ID, &acc.Name, &acc.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", name, translateError(err))
	}
	return &acc, nil
}

// FindAccountByName retrieves an account by its unique name.
func (r *SQLiteLedgerRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	return findAccountByName(ctx, r.DB, name)
}

// ListAccounts retrieves every account ordered by id.
func (r *SQLiteLedgerRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, balance FROM accounts ORDER BY id`)
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
func (r *SQLiteLedgerRepository) ListTransactions(ctx context.Context, kind domain.Kind) ([]domain.Transaction, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, account_name, amount, date, description FROM ` + table + ` ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
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

// ledgerTx implements portsrepo.LedgerTx over an open *sql.Tx.
type ledgerTx struct {
	tx *sql.Tx
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	res, err := t.tx.ExecContext(ctx, `INSERT INTO accounts (name, balance) VALUES (?, ?)`, account.Name, account.Balance)
	if err != nil {
		err = translateError(err)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account named %s already exists", apperrors.ErrDuplicate, account.Name)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", account.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read id of account %s: %w", account.Name, err)
	}
	account.ID = id
	return &account, nil
}

func (t *ledgerTx) DeleteAccount(ctx context.Context, accountID int64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, translateError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected deleting account %d: %w", accountID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// setBalance applies delta to the account read earlier in this transaction. The
// immediate transaction holds the database write lock, so acc.Balance is current.
func (t *ledgerTx) setBalance(ctx context.Context, acc *domain.Account, delta int64) (int64, error) {
	balance, err := accounting.ApplyDelta(acc.Balance, delta)
	if err != nil {
		return 0, fmt.Errorf("account %s: %w", acc.Name, err)
	}

	res, err := t.tx.ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE id = ?`, balance, acc.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance for account %s: %w", acc.Name, translateError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected updating %s: %w", acc.Name, err)
	}
	if n == 0 {
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

	acc, err := findAccountByName(ctx, t.tx, txn.AccountName)
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

	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO `+table+` (account_name, amount, date, description) VALUES (?, ?, ?, ?)`,
		txn.AccountName, txn.Amount, txn.Date, description)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s for %s: %w", txn.Kind, txn.AccountName, translateError(err))
	}
	if txn.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read id of new %s: %w", txn.Kind, err)
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
	err = t.tx.QueryRowContext(ctx,
		`DELETE FROM `+table+` WHERE id = ? RETURNING id, account_name, amount, date, description`,
		transactionID).Scan(&txn.ID, &txn.AccountName, &txn.Amount, &txn.Date, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	acc, err := findAccountByName(ctx, t.tx, txn.AccountName)
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
