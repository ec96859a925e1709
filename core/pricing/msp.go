package pricing

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/pricing/primitives"
	"msp-pricing/core/types"
)

// MSP prices the fixed monthly per-user managed-service plan.
//
// The volume discount and the yearly-billing incentive are applied
// multiplicatively, so the combined reduction is always smaller than their sum.
// MonthlyTotal never includes the yearly incentive; YearlyTotal always does.
func MSP(cat *catalog.Catalog, in Input) (*Result, error) {
	if err := validateUsers(in.Users); err != nil {
		return nil, err
	}
	plan, err := cat.MSPPlan(in.SupportType)
	if err != nil {
		return nil, err
	}
	sla, err := cat.SLA(in.SLALevel)
	if err != nil {
		return nil, err
	}

	users := decimal.NewFromInt(int64(in.Users))
	pricePerUser := plan.PricePerUser.Mul(sla.Multiplier)
	volumeDiscount := primitives.DiscountFraction(primitives.ResolveDiscount(in.Users, cat.VolumeTiers()))

	gross := users.Mul(pricePerUser)
	discountAmount := gross.Mul(volumeDiscount)
	monthly := gross.Mul(decimal.NewFromInt(1).Sub(volumeDiscount))

	return &Result{
		Model: types.ModelMSP,
		Breakdown: map[string]decimal.Decimal{
			KeyPricePerUser:     pricePerUser,
			KeyVolumeDiscount:   volumeDiscount,
			KeyDiscountAmount:   discountAmount,
			KeyBasePricePerUser: plan.PricePerUser,
			KeySLAMultiplier:    sla.Multiplier,
		},
		MonthlyTotal: monthly,
		YearlyTotal:  monthly.Mul(types.MonthsPerYear).Mul(cat.YearlyBillingFactor()),
		Config: Config{
			PricePerUser:   pricePerUser,
			VolumeDiscount: volumeDiscount,
			DiscountAmount: discountAmount,
		},
	}, nil
}
