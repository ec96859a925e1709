package pricing

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/types"
)

// Adhoc prices reactive support billed by the hour.
// No volume discount applies: this is the baseline the other models are measured against.
func Adhoc(cat *catalog.Catalog, in Input) (*Result, error) {
	if err := validateUsers(in.Users); err != nil {
		return nil, err
	}

	rates := cat.Adhoc()
	users := decimal.NewFromInt(int64(in.Users))
	pricePerUser := rates.HourlyRate.Mul(rates.EstimatedHoursPerUser)
	monthly := pricePerUser.Mul(users)

	return &Result{
		Model: types.ModelAdhoc,
		Breakdown: map[string]decimal.Decimal{
			KeyHourlyRate:     rates.HourlyRate,
			KeyEstimatedHours: rates.EstimatedHoursPerUser.Mul(users),
			KeyPricePerUser:   pricePerUser,
		},
		MonthlyTotal: monthly,
		YearlyTotal:  monthly.Mul(types.MonthsPerYear),
		Config: Config{
			PricePerUser:   pricePerUser,
			VolumeDiscount: decimal.Zero,
			DiscountAmount: decimal.Zero,
		},
	}, nil
}
