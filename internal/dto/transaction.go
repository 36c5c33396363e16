package dto

import (
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to post an income or expense.
// Amount is a pointer so that an explicit 0 passes the required check.
type CreateTransactionRequest struct {
	AccountName string `json:"accountName" binding:"required,notblank"`
	Amount      *int64 `json:"amount" binding:"required"` // Minor units, must be non-negative
	Date        string `json:"date" binding:"required,notblank"`
	Description string `json:"description"`
}

// ToInput converts the request into the service input.
func (r CreateTransactionRequest) ToInput() portssvc.PostTransactionInput {
	in := portssvc.PostTransactionInput{
		AccountName: r.AccountName,
		Date:        r.Date,
		Description: r.Description,
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	return in
}

// TransactionResponse defines the data returned for an income or expense.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Kind        domain.Kind     `json:"kind"`
	AccountName string          `json:"accountName"`
	Amount      int64           `json:"amount"`
	AmountMajor decimal.Decimal `json:"amountMajor"`
	Display     string          `json:"display"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}

// ListTransactionsResponse wraps the list of transactions of one kind.
type ListTransactionsResponse struct {
	Kind         domain.Kind           `json:"kind"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction, currency string) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		Kind:        txn.Kind,
		AccountName: txn.AccountName,
		Amount:      txn.Amount,
		AmountMajor: accounting.ToMajorUnits(txn.Amount, utils.CurrencyFraction(currency)),
		Display:     utils.FormatMinorUnits(txn.Amount, currency),
		Date:        txn.Date,
		Description: txn.Description,
	}
}

// ToListTransactionsResponse converts transactions of one kind to a ListTransactionsResponse.
func ToListTransactionsResponse(kind domain.Kind, txns []domain.Transaction, currency string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i], currency)
	}
	return ListTransactionsResponse{Kind: kind, Transactions: res}
}
