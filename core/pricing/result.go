// Package pricing implements the three pricing models.
// Every calculator is a pure function of a catalog and an Input: no shared
// state, no I/O, and identical inputs always give identical results.
package pricing

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

// Breakdown keys. The MSP keys pricePerUser, volumeDiscount and
// discountAmount are displayed directly by consumers and must not change.
const (
	KeyPricePerUser     = "pricePerUser"
	KeyVolumeDiscount   = "volumeDiscount"
	KeyDiscountAmount   = "discountAmount"
	KeyBasePricePerUser = "basePricePerUser"
	KeySLAMultiplier    = "slaMultiplier"
	KeyHourlyRate       = "hourlyRate"
	KeyEstimatedHours   = "estimatedHours"
	KeyBundleHours      = "bundleHours"
	KeyBundlePrice      = "bundlePrice"
	KeyBundlesNeeded    = "bundlesNeeded"
	KeyBundleDiscount   = "bundleDiscount"
)

// Input is what the user picked in the calculator
type Input struct {
	Users       int               `json:"users"`
	SupportType types.SupportType `json:"mspType,omitempty"`
	SLALevel    types.SLALevel    `json:"slaLevel,omitempty"`
	BundleIndex int               `json:"bundleIndex"`
}

// Config echoes the per-user figures a result was computed from
type Config struct {
	PricePerUser   decimal.Decimal `json:"pricePerUser"`
	VolumeDiscount decimal.Decimal `json:"volumeDiscount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// Result is the output of one calculator
type Result struct {
	Model        types.PricingModel         `json:"model"`
	Breakdown    map[string]decimal.Decimal `json:"breakdown"`
	MonthlyTotal decimal.Decimal            `json:"monthlyTotal"`
	YearlyTotal  decimal.Decimal            `json:"yearlyTotal"`
	Config       Config                     `json:"config"`
}

// EffectivePerUser is the monthly total spread over users
func (r *Result) EffectivePerUser(users int) decimal.Decimal {
	if users <= 0 {
		return decimal.Zero
	}
	return r.MonthlyTotal.Div(decimal.NewFromInt(int64(users)))
}

func validateUsers(users int) error {
	if users < 1 {
		return errors.InvalidInput("users must be at least 1, got %d", users).
			WithContext("users", users)
	}
	return nil
}
