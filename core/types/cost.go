// Package types - Money types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// MonthsPerYear is used for every monthly-to-yearly projection
var MonthsPerYear = decimal.NewFromInt(12)

// Hundred converts between percentages and fractions
var Hundred = decimal.NewFromInt(100)

// RoundCents rounds a monetary amount to cent precision, half away from zero
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// UseNumericMoneyJSON makes decimal amounts encode as JSON numbers
// (600.5) rather than strings ("600.5"). It flips a process-wide setting in
// the decimal package, so only program entry points call it.
func UseNumericMoneyJSON() {
	decimal.MarshalJSONWithoutQuotes = true
}
