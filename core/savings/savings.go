// Package savings compares a candidate pricing model against a baseline.
//
// All horizons are straight linear projections of the monthly difference:
// no compounding, no price escalation and no present-value discounting.
// Treat the 3- and 5-year figures as indicative, not as forecasts.
package savings

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/types"
)

var half = decimal.RequireFromString("0.5")

// Result is the saving of a candidate over a baseline.
// Every field is negative when the candidate is the more expensive option.
type Result struct {
	Monthly    decimal.Decimal `json:"monthly"`
	Yearly     decimal.Decimal `json:"yearly"`
	Percentage decimal.Decimal `json:"percentage"`
	ThreeYear  decimal.Decimal `json:"threeYear"`
	FiveYear   decimal.Decimal `json:"fiveYear"`
}

// Calculate returns how much candidateMonthly saves against baselineMonthly.
// Percentage is a whole number rounded half up; a zero baseline yields 0%.
func Calculate(candidateMonthly, baselineMonthly decimal.Decimal) Result {
	monthly := baselineMonthly.Sub(candidateMonthly)
	yearly := monthly.Mul(types.MonthsPerYear)

	return Result{
		Monthly:    monthly,
		Yearly:     yearly,
		Percentage: percentage(monthly, baselineMonthly),
		ThreeYear:  yearly.Mul(decimal.NewFromInt(3)),
		FiveYear:   yearly.Mul(decimal.NewFromInt(5)),
	}
}

func percentage(diff, baseline decimal.Decimal) decimal.Decimal {
	if baseline.IsZero() {
		return decimal.Zero
	}
	return diff.Div(baseline).Mul(types.Hundred).Add(half).Floor()
}

// IsSaving reports whether the candidate is strictly cheaper
func (r Result) IsSaving() bool {
	return r.Monthly.IsPositive()
}
