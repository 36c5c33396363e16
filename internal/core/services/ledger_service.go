package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portsrepo "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/repositories"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils/accounting"
	"github.com/cenkalti/backoff/v4"
)

const defaultRetryAttempts = 3

// LedgerService is the only sanctioned entry point into the ledger store. Every
// transaction insert and delete goes through writeTransaction, which applies the
// matching balance adjustment in the same storage transaction.
type LedgerService struct {
	BaseService
	repo          portsrepo.LedgerRepository
	retryAttempts uint64
}

// LedgerServiceOption configures a LedgerService.
type LedgerServiceOption func(*LedgerService)

// WithRetryAttempts sets how many times an operation is retried after a transient
// storage conflict. Zero disables retries.
func WithRetryAttempts(n int) LedgerServiceOption {
	return func(s *LedgerService) {
		if n >= 0 {
			s.retryAttempts = uint64(n)
		}
	}
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo portsrepo.LedgerRepository, opts ...LedgerServiceOption) *LedgerService {
	s := &LedgerService{
		repo:          repo,
		retryAttempts: defaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// CreateAccount creates an account with the given opening balance (0 when nil).
func (s *LedgerService) CreateAccount(ctx context.Context, name string, initialBalance *int64) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	account := domain.Account{Name: name}
	if initialBalance != nil {
		account.Balance = *initialBalance
	}

	var created *domain.Account
	err := s.runInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		var err error
		created, err = tx.SaveAccount(ctx, account)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_name", name))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", created.ID), slog.String("account_name", created.Name))
	return created, nil
}

// GetAccount retrieves an account by name.
func (s *LedgerService) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	account, err := s.repo.FindAccountByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by name", slog.String("account_name", name))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves every account ordered by id.
func (s *LedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

// DeleteAccount removes an account. Its transactions are removed by cascade; their
// balance effects vanish with the account.
func (s *LedgerService) DeleteAccount(ctx context.Context, accountID int64) error {
	err := s.runInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID))
	return nil
}

// PostTransaction records an income or expense against an existing account and applies
// its balance effect.
func (s *LedgerService) PostTransaction(ctx context.Context, kind domain.Kind, in portssvc.PostTransactionInput) (*domain.Transaction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative, got %d", apperrors.ErrInvalidAmount, in.Amount)
	}
	name := strings.TrimSpace(in.AccountName)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}

	txn := domain.Transaction{
		Kind:        kind,
		AccountName: name,
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
	}

	posted, err := s.writeTransaction(ctx, accounting.Post, func(ctx context.Context, tx portsrepo.LedgerTx) (*portsrepo.BalanceEffect, error) {
		return tx.PostTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("kind", string(kind)),
		slog.Int64("transaction_id", posted.ID),
		slog.String("account_name", posted.AccountName),
		slog.Int64("amount", posted.Amount))
	return posted, nil
}

// ListTransactions retrieves every transaction of one kind ordered by id.
func (s *LedgerService) ListTransactions(ctx context.Context, kind domain.Kind) ([]domain.Transaction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}
	txns, err := s.repo.ListTransactions(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list %s: %w", kind.Plural(), err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (s *LedgerService) DeleteTransaction(ctx context.Context, kind domain.Kind, transactionID int64) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}

	removed, err := s.writeTransaction(ctx, accounting.Reverse, func(ctx context.Context, tx portsrepo.LedgerTx) (*portsrepo.BalanceEffect, error) {
		return tx.RemoveTransaction(ctx, kind, transactionID)
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("kind", string(kind)),
		slog.Int64("transaction_id", removed.ID),
		slog.String("account_name", removed.AccountName))
	return nil
}

// rowWrite inserts or deletes one transaction row together with its balance change.
type rowWrite func(ctx context.Context, tx portsrepo.LedgerTx) (*portsrepo.BalanceEffect, error)

// writeTransaction is the single write path for transaction rows. The storage port only
// offers row writes that carry their balance change, so both commit or neither does.
func (s *LedgerService) writeTransaction(ctx context.Context, dir accounting.Direction, write rowWrite) (*domain.Transaction, error) {
	var effect *portsrepo.BalanceEffect
	err := s.runInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		var err error
		effect, err = write(ctx, tx)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConsistencyViolation):
			s.GetLogger(ctx).Error("Balance adjustment targeted a missing account",
				slog.String("direction", dir.String()),
				slog.String("error", err.Error()))
		case errors.Is(err, apperrors.ErrNotFound),
			errors.Is(err, apperrors.ErrUnknownAccount),
			errors.Is(err, apperrors.ErrValidation):
		case errors.Is(err, apperrors.ErrInvalidAmount):
			s.GetLogger(ctx).Warn("Balance change rejected", slog.String("direction", dir.String()), slog.String("error", err.Error()))
		default:
			s.LogError(ctx, err, "Failed to write transaction", slog.String("direction", dir.String()))
		}
		return nil, err
	}

	if !effect.Applied {
		// The account is already gone; its balance is moot.
		s.LogDebug(ctx, "Reversal for missing account skipped",
			slog.String("account_name", effect.Transaction.AccountName),
			slog.Int64("transaction_id", effect.Transaction.ID))
	} else {
		s.LogDebug(ctx, "Balance adjusted",
			slog.String("account_name", effect.Transaction.AccountName),
			slog.Int64("delta", effect.Delta),
			slog.Int64("balance", effect.Balance))
	}
	return &effect.Transaction, nil
}

// runInTx runs fn in a storage transaction, retrying transient conflicts with
// exponential backoff.
func (s *LedgerService) runInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 25 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond
	b := backoff.WithContext(backoff.WithMaxRetries(policy, s.retryAttempts), ctx)

	return backoff.RetryNotify(func() error {
		err := s.repo.WithinTx(ctx, fn)
		if err != nil && !errors.Is(err, apperrors.ErrStorageBusy) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		s.GetLogger(ctx).Warn("Storage busy, retrying",
			slog.String("error", err.Error()),
			slog.Duration("wait", wait))
	})
}
