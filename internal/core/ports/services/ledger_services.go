package services

import (
	"context"

	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
)

// PostTransactionInput carries the caller-supplied fields of a new transaction.
type PostTransactionInput struct {
	AccountName string
	Amount      int64
	Date        string
	Description string
}

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account, and so its current balance, by name.
	GetAccount(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves every account in a stable order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount creates an account with the given opening balance (0 when nil).
	CreateAccount(ctx context.Context, name string, initialBalance *int64) (*domain.Account, error)

	// DeleteAccount removes an account together with its transactions.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// TransactionSvc defines the operations on income and expense transactions.
type TransactionSvc interface {
	// PostTransaction records a transaction and applies its balance effect atomically.
	PostTransaction(ctx context.Context, kind domain.Kind, in PostTransactionInput) (*domain.Transaction, error)

	// ListTransactions retrieves every transaction of one kind.
	ListTransactions(ctx context.Context, kind domain.Kind) ([]domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect atomically.
	DeleteTransaction(ctx context.Context, kind domain.Kind, transactionID int64) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// LedgerSvcFacade is the full command interface exposed to dispatchers.
type LedgerSvcFacade interface {
	AccountSvcFacade
	TransactionSvc
}
