package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/services"
	"github.com/Arshia-r-m/Financial-tracker/pkg/config"
	"github.com/Arshia-r-m/Financial-tracker/pkg/database"
	"github.com/stretchr/testify/suite"
)

// LedgerStoreTestSuite exercises LedgerService against a real SQLite file.
type LedgerStoreTestSuite struct {
	suite.Suite
	store   *database.Store
	service portssvc.LedgerSvcFacade
	ctx     context.Context
}

func (suite *LedgerStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	cfg := &config.Config{
		Driver:               config.DriverSQLite,
		DBPath:               filepath.Join(suite.T().TempDir(), "ft_database.db"),
		StorageRetryAttempts: 3,
	}
	store, err := database.OpenStore(suite.ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(err)
	suite.store = store
	suite.service = services.NewServiceContainer(cfg, store.Repositories).Ledger
}

func (suite *LedgerStoreTestSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *LedgerStoreTestSuite) createAccount(name string, balance int64) *domain.Account {
	acc, err := suite.service.CreateAccount(suite.ctx, name, &balance)
	suite.Require().NoError(err)
	return acc
}

func (suite *LedgerStoreTestSuite) post(kind domain.Kind, account string, amount int64) *domain.Transaction {
	txn, err := suite.service.PostTransaction(suite.ctx, kind, portssvc.PostTransactionInput{
		AccountName: account,
		Amount:      amount,
		Date:        "2024-05-01",
	})
	suite.Require().NoError(err)
	return txn
}

func (suite *LedgerStoreTestSuite) balanceOf(name string) int64 {
	acc, err := suite.service.GetAccount(suite.ctx, name)
	suite.Require().NoError(err)
	return acc.Balance
}

// assertBalancesConsistent checks that every balance equals its opening balance plus
// incomes minus expenses on record.
func (suite *LedgerStoreTestSuite) assertBalancesConsistent(opening map[string]int64) {
	expected := make(map[string]int64, len(opening))
	for name, bal := range opening {
		expected[name] = bal
	}

	incomes, err := suite.service.ListTransactions(suite.ctx, domain.Income)
	suite.Require().NoError(err)
	for _, t := range incomes {
		expected[t.AccountName] += t.Amount
	}
	expenses, err := suite.service.ListTransactions(suite.ctx, domain.Expense)
	suite.Require().NoError(err)
	for _, t := range expenses {
		expected[t.AccountName] -= t.Amount
	}

	accounts, err := suite.service.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(accounts, len(opening))
	for _, acc := range accounts {
		suite.Equal(expected[acc.Name], acc.Balance, "balance of %s", acc.Name)
	}
}

func (suite *LedgerStoreTestSuite) TestWalletScenario() {
	suite.createAccount("Wallet", 100)

	expense := suite.post(domain.Expense, "Wallet", 10)
	suite.Equal(int64(90), suite.balanceOf("Wallet"))

	suite.post(domain.Income, "Wallet", 50)
	suite.Equal(int64(140), suite.balanceOf("Wallet"))

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, domain.Expense, expense.ID))
	suite.Equal(int64(150), suite.balanceOf("Wallet"))

	expenses, err := suite.service.ListTransactions(suite.ctx, domain.Expense)
	suite.Require().NoError(err)
	suite.Empty(expenses)
}

func (suite *LedgerStoreTestSuite) TestPostThenDeleteRestoresBalance() {
	suite.createAccount("Bank", 1234)

	for _, kind := range domain.Kinds {
		txn := suite.post(kind, "Bank", 999)
		suite.NotEqual(int64(1234), suite.balanceOf("Bank"))
		suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, kind, txn.ID))
		suite.Equal(int64(1234), suite.balanceOf("Bank"))
	}
}

func (suite *LedgerStoreTestSuite) TestUnknownAccountLeavesNoTrace() {
	suite.createAccount("Wallet", 100)

	_, err := suite.service.PostTransaction(suite.ctx, domain.Income, portssvc.PostTransactionInput{
		AccountName: "Ghost", Amount: 10, Date: "2024-05-01",
	})
	suite.ErrorIs(err, apperrors.ErrUnknownAccount)

	incomes, err := suite.service.ListTransactions(suite.ctx, domain.Income)
	suite.Require().NoError(err)
	suite.Empty(incomes)
	suite.Equal(int64(100), suite.balanceOf("Wallet"))
}

func (suite *LedgerStoreTestSuite) TestBalanceOverflowRejected() {
	suite.createAccount("Bank", 100)

	_, err := suite.service.PostTransaction(suite.ctx, domain.Income, portssvc.PostTransactionInput{
		AccountName: "Bank", Amount: math.MaxInt64, Date: "2024-05-01",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	suite.Equal(int64(100), suite.balanceOf("Bank"))
	incomes, err := suite.service.ListTransactions(suite.ctx, domain.Income)
	suite.Require().NoError(err)
	suite.Empty(incomes)

	suite.createAccount("Cash", 0)
	accounts, err := suite.service.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal([]int64{100, 0}, []int64{accounts[0].Balance, accounts[1].Balance})
}

func (suite *LedgerStoreTestSuite) TestBalanceUnderflowRejected() {
	suite.createAccount("Debt", math.MinInt64+5)

	_, err := suite.service.PostTransaction(suite.ctx, domain.Expense, portssvc.PostTransactionInput{
		AccountName: "Debt", Amount: 10, Date: "2024-05-01",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Equal(int64(math.MinInt64+5), suite.balanceOf("Debt"))
}

func (suite *LedgerStoreTestSuite) TestReversalOverflowKeepsTransaction() {
	suite.createAccount("Savings", math.MaxInt64-5)
	expense := suite.post(domain.Expense, "Savings", 10)
	suite.post(domain.Income, "Savings", 15)
	suite.Equal(int64(math.MaxInt64), suite.balanceOf("Savings"))

	err := suite.service.DeleteTransaction(suite.ctx, domain.Expense, expense.ID)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	expenses, err := suite.service.ListTransactions(suite.ctx, domain.Expense)
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 1)
	suite.Equal(expense.ID, expenses[0].ID)
	suite.assertBalancesConsistent(map[string]int64{"Savings": math.MaxInt64 - 5})
}

func (suite *LedgerStoreTestSuite) TestDeleteMissingExpense() {
	suite.createAccount("Wallet", 100)
	suite.post(domain.Expense, "Wallet", 10)

	err := suite.service.DeleteTransaction(suite.ctx, domain.Expense, 999)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(int64(90), suite.balanceOf("Wallet"))
}

func (suite *LedgerStoreTestSuite) TestDuplicateAccountName() {
	suite.createAccount("Wallet", 100)

	_, err := suite.service.CreateAccount(suite.ctx, "Wallet", nil)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(int64(100), suite.balanceOf("Wallet"))
}

func (suite *LedgerStoreTestSuite) TestDeleteAccountCascades() {
	wallet := suite.createAccount("Wallet", 100)
	suite.createAccount("Bank", 500)
	suite.post(domain.Expense, "Wallet", 10)
	suite.post(domain.Income, "Wallet", 20)
	suite.post(domain.Expense, "Bank", 30)

	suite.Require().NoError(suite.service.DeleteAccount(suite.ctx, wallet.ID))

	_, err := suite.service.GetAccount(suite.ctx, "Wallet")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(int64(470), suite.balanceOf("Bank"))

	incomes, err := suite.service.ListTransactions(suite.ctx, domain.Income)
	suite.Require().NoError(err)
	suite.Empty(incomes)
	expenses, err := suite.service.ListTransactions(suite.ctx, domain.Expense)
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 1)
	suite.Equal("Bank", expenses[0].AccountName)

	suite.assertBalancesConsistent(map[string]int64{"Bank": 500})
}

func (suite *LedgerStoreTestSuite) TestRandomOperationsKeepBalancesConsistent() {
	opening := map[string]int64{"Wallet": 100, "Bank": 0, "Card": -2500}
	names := []string{"Wallet", "Bank", "Card"}
	for _, name := range names {
		suite.createAccount(name, opening[name])
	}

	rng := rand.New(rand.NewSource(42))
	live := map[domain.Kind][]int64{}

	for i := 0; i < 200; i++ {
		kind := domain.Kinds[rng.Intn(len(domain.Kinds))]
		switch op := rng.Intn(10); {
		case op < 6:
			txn := suite.post(kind, names[rng.Intn(len(names))], rng.Int63n(10_000))
			live[kind] = append(live[kind], txn.ID)
		case op < 9 && len(live[kind]) > 0:
			idx := rng.Intn(len(live[kind]))
			id := live[kind][idx]
			live[kind] = append(live[kind][:idx], live[kind][idx+1:]...)
			suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, kind, id))
		default:
			err := suite.service.DeleteTransaction(suite.ctx, kind, int64(1_000_000+i))
			suite.Require().ErrorIs(err, apperrors.ErrNotFound)
		}

		if i%20 == 0 {
			suite.assertBalancesConsistent(opening)
		}
	}
	suite.assertBalancesConsistent(opening)
}

func (suite *LedgerStoreTestSuite) TestConcurrentPostsAreSerialized() {
	suite.createAccount("Wallet", 0)

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			_, err := suite.service.PostTransaction(suite.ctx, domain.Income, portssvc.PostTransactionInput{
				AccountName: "Wallet", Amount: 100, Date: fmt.Sprintf("2024-05-%02d", i+1),
			})
			errs <- err
		}(i)
	}
	for i := 0; i < workers; i++ {
		suite.Require().NoError(<-errs)
	}

	suite.Equal(int64(workers*100), suite.balanceOf("Wallet"))
	suite.assertBalancesConsistent(map[string]int64{"Wallet": 0})
}

func TestLedgerStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerStoreTestSuite))
}
