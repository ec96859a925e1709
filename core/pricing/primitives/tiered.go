// Package primitives - Tiered pricing primitives
// Volume discounts are resolved here and nowhere else.
package primitives

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/types"
)

// ResolveDiscount returns the discount percentage unlocked by users.
// tiers must be sorted ascending by MinUsers, as catalog.Catalog guarantees.
// The last tier whose MinUsers <= users wins; a count on a boundary selects
// that boundary's tier. Below the first tier, and for users <= 0, it is 0.
func ResolveDiscount(users int, tiers []catalog.VolumeTier) decimal.Decimal {
	percent := decimal.Zero
	if users <= 0 {
		return percent
	}
	for _, tier := range tiers {
		if tier.MinUsers > users {
			break
		}
		percent = tier.DiscountPercent
	}
	return percent
}

// DiscountFraction converts a percentage (15) to a fraction (0.15)
func DiscountFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(types.Hundred)
}

// TierProgress describes the distance to the next volume tier
type TierProgress struct {
	// Current is the tier in effect, nil below the first tier
	Current *catalog.VolumeTier `json:"current,omitempty"`

	// Next is the next tier up, nil once the highest tier is reached
	Next *catalog.VolumeTier `json:"next,omitempty"`

	// UsersToNext is how many more users unlock Next
	UsersToNext int `json:"usersToNext"`
}

// NextTier reports the tier in effect for users and what it takes to reach the next one
func NextTier(users int, tiers []catalog.VolumeTier) TierProgress {
	var progress TierProgress
	for i := range tiers {
		tier := tiers[i]
		if users > 0 && tier.MinUsers <= users {
			progress.Current = &tier
			continue
		}
		progress.Next = &tier
		progress.UsersToNext = tier.MinUsers - max(users, 0)
		break
	}
	return progress
}
