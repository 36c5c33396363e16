package repositories

import (
	"context"

	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
)

// LedgerReader defines read operations on accounts and transactions.
type LedgerReader interface {
	// FindAccountByName returns apperrors.ErrNotFound when no account has that name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts returns every account ordered by id.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListTransactions returns every transaction of the given kind ordered by id.
	ListTransactions(ctx context.Context, kind domain.Kind) ([]domain.Transaction, error)
}

// BalanceEffect is a transaction row write together with the balance change it caused.
type BalanceEffect struct {
	Transaction domain.Transaction
	Delta       int64 // Signed change derived from accounting.BalanceDelta
	Balance     int64 // Account balance after the change
	Applied     bool  // False when a reversal found no account row
}

// LedgerTx is the set of writes available inside a storage transaction.
//
// There is no way to insert or delete a transaction row on its own: each row write
// applies the matching balance change to its account before returning.
type LedgerTx interface {
	// SaveAccount inserts an account and returns it with its assigned id.
	// A name collision returns apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// DeleteAccount removes the account and, by cascade, its transactions.
	// Returns apperrors.ErrNotFound when the id is absent.
	DeleteAccount(ctx context.Context, accountID int64) error

	// PostTransaction locks the named account, inserts txn and applies its posting
	// delta. Returns apperrors.ErrUnknownAccount when the account is absent and
	// apperrors.ErrInvalidAmount when the new balance would overflow.
	PostTransaction(ctx context.Context, txn domain.Transaction) (*BalanceEffect, error)

	// RemoveTransaction deletes a row and applies its reversal delta. When the account
	// is already gone the row is still deleted and Applied is false.
	// Returns apperrors.ErrNotFound when the id is absent for that kind.
	RemoveTransaction(ctx context.Context, kind domain.Kind, transactionID int64) (*BalanceEffect, error)
}

// LedgerRepository combines reads with transactional writes.
type LedgerRepository interface {
	LedgerReader
	TransactionManager
}
