package domain

import (
	"fmt"
	"strings"
)

// Kind distinguishes income from expense transactions. Both share one shape; only the
// sign of their balance effect differs.
type Kind string

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

// Kinds lists every transaction kind in a stable order.
var Kinds = []Kind{Expense, Income}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == Expense || k == Income
}

// Plural returns the collection name used for the kind ("expenses", "incomes").
func (k Kind) Plural() string {
	return string(k) + "s"
}

// ParseKind accepts the singular or plural form of a kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return Expense, nil
	case "income", "incomes":
		return Income, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction is a single posted income or expense against one account.
// Transactions are created and deleted, never edited.
type Transaction struct {
	ID          int64  `json:"id"`
	Kind        Kind   `json:"kind"`
	AccountName string `json:"accountName"` // FK -> Account.Name
	Amount      int64  `json:"amount"`      // Non-negative magnitude; sign implied by Kind
	Date        string `json:"date"`        // Opaque caller-supplied date
	Description string `json:"description"` // Nullable
}
