package pricing

import (
	"msp-pricing/core/catalog"
	"msp-pricing/core/pricing/primitives"
	"msp-pricing/core/savings"
)

// Comparison prices all three models for the same input
type Comparison struct {
	Input   Input   `json:"input"`
	Adhoc   *Result `json:"adhoc"`
	Prepaid *Result `json:"prepaid"`
	MSP     *Result `json:"msp"`

	// MSPSavings and PrepaidSavings are measured against the ad-hoc baseline
	MSPSavings     savings.Result `json:"mspSavings"`
	PrepaidSavings savings.Result `json:"prepaidSavings"`

	// VolumeTier shows how far the user count is from the next MSP discount
	VolumeTier primitives.TierProgress `json:"volumeTier"`
}

// Compare runs every calculator on in and measures MSP and pre-paid against ad-hoc
func Compare(cat *catalog.Catalog, in Input) (*Comparison, error) {
	adhoc, err := Adhoc(cat, in)
	if err != nil {
		return nil, err
	}
	prepaid, err := Prepaid(cat, in)
	if err != nil {
		return nil, err
	}
	msp, err := MSP(cat, in)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Input:          in,
		Adhoc:          adhoc,
		Prepaid:        prepaid,
		MSP:            msp,
		MSPSavings:     savings.Calculate(msp.MonthlyTotal, adhoc.MonthlyTotal),
		PrepaidSavings: savings.Calculate(prepaid.MonthlyTotal, adhoc.MonthlyTotal),
		VolumeTier:     primitives.NextTier(in.Users, cat.VolumeTiers()),
	}, nil
}
