package dto

import (
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name    string `json:"name" binding:"required,notblank"`
	Balance *int64 `json:"balance"` // Optional opening balance in minor units, defaults to 0
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Balance      int64           `json:"balance"`      // Minor units
	BalanceMajor decimal.Decimal `json:"balanceMajor"` // Major units in the configured currency
	Display      string          `json:"display"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account, currency string) AccountResponse {
	return AccountResponse{
		ID:           acc.ID,
		Name:         acc.Name,
		Balance:      acc.Balance,
		BalanceMajor: accounting.ToMajorUnits(acc.Balance, utils.CurrencyFraction(currency)),
		Display:      utils.FormatMinorUnits(acc.Balance, currency),
	}
}

// ToListAccountResponse converts a slice of domain.Account to a ListAccountsResponse.
func ToListAccountResponse(accounts []domain.Account, currency string) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i], currency)
	}
	return ListAccountsResponse{Accounts: res}
}
