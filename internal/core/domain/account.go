package domain

// Account represents a named bucket holding a derived balance.
// Balance is denominated in the smallest currency unit and is only ever changed by
// the balance maintenance rules after creation.
type Account struct {
	ID      int64  `json:"id"`      // System-assigned, immutable
	Name    string `json:"name"`    // Unique; target of Transaction.AccountName
	Balance int64  `json:"balance"` // Minor units, may be negative
}
