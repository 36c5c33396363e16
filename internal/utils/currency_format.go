package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = money.USD

// CurrencyFraction returns the number of minor-unit digits for an ISO currency code.
// Unknown codes fall back to 2.
func CurrencyFraction(code string) int {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c.Fraction
	}
	return 2
}

// FormatMinorUnits renders an amount held in minor units for display.
// Example: 12345 with USD returns "$123.45"
// Example: -500 with JPY returns "-¥500"
func FormatMinorUnits(amount int64, currencyCode string) string {
	code := strings.ToUpper(currencyCode)
	if code == "" || money.GetCurrency(code) == nil {
		code = DefaultCurrency
	}
	return money.New(amount, code).Display()
}
