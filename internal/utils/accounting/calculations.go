package accounting

import (
	"fmt"
	"math"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction says whether a transaction row is being posted or removed.
type Direction int

const (
	// Post is the effect of inserting a transaction row.
	Post Direction = iota
	// Reverse is the effect of deleting a transaction row.
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Post:
		return "post"
	case Reverse:
		return "reverse"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// BalanceDelta returns the signed change a transaction applies to its account's balance.
//
//	expense post    -amount
//	income  post    +amount
//	expense reverse +amount
//	income  reverse -amount
//
// This is the only place the sign convention lives; every balance adjustment is derived
// from it.
func BalanceDelta(kind domain.Kind, amount int64, dir Direction) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("amount must be non-negative, got %d", amount)
	}

	var delta int64
	switch kind {
	case domain.Income:
		delta = amount
	case domain.Expense:
		delta = -amount
	default:
		return 0, fmt.Errorf("unknown transaction kind %q", kind)
	}

	switch dir {
	case Post:
		return delta, nil
	case Reverse:
		return -delta, nil
	}
	return 0, fmt.Errorf("unknown direction %v", dir)
}

// ApplyDelta returns balance + delta, or apperrors.ErrInvalidAmount when the sum does
// not fit in an int64.
func ApplyDelta(balance, delta int64) (int64, error) {
	if (delta > 0 && balance > math.MaxInt64-delta) || (delta < 0 && balance < math.MinInt64-delta) {
		return 0, fmt.Errorf("%w: balance %d cannot absorb change of %d", apperrors.ErrInvalidAmount, balance, delta)
	}
	return balance + delta, nil
}

// ToMajorUnits converts an amount in minor units to a decimal in major units, given the
// currency's number of fraction digits (2 for USD, 0 for JPY).
func ToMajorUnits(amount int64, fraction int) decimal.Decimal {
	return decimal.New(amount, -int32(fraction))
}
