package pricing

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/types"
)

// Prepaid prices the bundle at in.BundleIndex for the whole organisation.
// One bundle covers everyone until the estimated demand exceeds its hours;
// beyond that as many bundles are bought as the demand needs.
func Prepaid(cat *catalog.Catalog, in Input) (*Result, error) {
	if err := validateUsers(in.Users); err != nil {
		return nil, err
	}
	bundle, err := cat.Bundle(in.BundleIndex)
	if err != nil {
		return nil, err
	}

	rates := cat.Adhoc()
	users := decimal.NewFromInt(int64(in.Users))
	hoursNeeded := rates.EstimatedHoursPerUser.Mul(users)
	count := bundlesNeeded(hoursNeeded, bundle.Hours)

	monthly := bundle.Price.Mul(count)
	boughtHours := decimal.NewFromInt(int64(bundle.Hours)).Mul(count)
	saved := rates.HourlyRate.Sub(bundle.HourlyRate).Mul(boughtHours)

	return &Result{
		Model: types.ModelPrepaid,
		Breakdown: map[string]decimal.Decimal{
			KeyBundleHours:    decimal.NewFromInt(int64(bundle.Hours)),
			KeyBundlePrice:    bundle.Price,
			KeyHourlyRate:     bundle.HourlyRate,
			KeyBundlesNeeded:  count,
			KeyEstimatedHours: hoursNeeded,
			KeyBundleDiscount: bundle.Discount,
		},
		MonthlyTotal: monthly,
		YearlyTotal:  monthly.Mul(types.MonthsPerYear),
		Config: Config{
			PricePerUser:   types.RoundCents(monthly.Div(users)),
			VolumeDiscount: bundle.Discount.Div(types.Hundred),
			DiscountAmount: saved,
		},
	}, nil
}

// bundlesNeeded is ceil(hours / bundleHours), never less than one
func bundlesNeeded(hours decimal.Decimal, bundleHours int) decimal.Decimal {
	count := hours.Div(decimal.NewFromInt(int64(bundleHours))).Ceil()
	if count.LessThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return count
}

// RecommendBundle returns the index of the bundle with the lowest monthly
// total for users. Ties go to the smaller bundle.
func RecommendBundle(cat *catalog.Catalog, users int) (int, error) {
	if err := validateUsers(users); err != nil {
		return 0, err
	}

	best := -1
	var bestTotal decimal.Decimal
	for i := range cat.Bundles() {
		res, err := Prepaid(cat, Input{Users: users, BundleIndex: i})
		if err != nil {
			return 0, err
		}
		if best < 0 || res.MonthlyTotal.LessThan(bestTotal) {
			best = i
			bestTotal = res.MonthlyTotal
		}
	}
	return best, nil
}
