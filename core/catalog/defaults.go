package catalog

import (
	"github.com/shopspring/decimal"

	"msp-pricing/core/types"
)

// DefaultVersion labels the built-in catalog
const DefaultVersion = "2025.1"

// DefaultSpec returns the built-in catalog definition.
// Every call returns a fresh value; callers may modify it to derive test catalogs.
func DefaultSpec() Spec {
	d := decimal.RequireFromString
	return Spec{
		Version:               DefaultVersion,
		Currency:              types.CurrencyEUR,
		YearlyBillingDiscount: d("0.10"),
		Adhoc: Adhoc{
			HourlyRate:            d("100"),
			EstimatedHoursPerUser: d("1"),
		},
		Bundles: []BundleSpec{
			{Hours: 10, Price: d("950")},
			{Hours: 20, Price: d("1800")},
			{Hours: 50, Price: d("4250")},
			{Hours: 100, Price: d("8000")},
		},
		MSPPlans: map[types.SupportType]MSPPlan{
			types.SupportRemote: {PricePerUser: d("60")},
			types.SupportHybrid: {PricePerUser: d("75")},
			types.SupportOnsite: {PricePerUser: d("85")},
		},
		SLAOptions: map[types.SLALevel]SLAOption{
			types.SLAStandard: {ResponseTime: "8h", Availability: "Mon-Fri 09:00-17:00", Multiplier: d("1.0")},
			types.SLAPriority: {ResponseTime: "4h", Availability: "Mon-Fri 07:00-20:00", Multiplier: d("1.25")},
			types.SLAPremium:  {ResponseTime: "1h", Availability: "24/7", Multiplier: d("1.5")},
		},
		VolumeTiers: []VolumeTier{
			{MinUsers: 10, DiscountPercent: d("0")},
			{MinUsers: 25, DiscountPercent: d("10")},
			{MinUsers: 50, DiscountPercent: d("15")},
			{MinUsers: 100, DiscountPercent: d("20")},
		},
		Services: []Service{
			{ID: "ayce-remote", Name: "All-You-Can-Eat Remote Support", UnitPrice: d("60"), BillingUnit: PerUserMonth},
			{ID: "ayce-hybrid", Name: "All-You-Can-Eat Hybrid Support", UnitPrice: d("75"), BillingUnit: PerUserMonth},
			{ID: "ayce-onsite", Name: "All-You-Can-Eat On-site Support", UnitPrice: d("85"), BillingUnit: PerUserMonth},
			{ID: "microsoft-365-business-basic", Name: "Microsoft 365 Business Basic", UnitPrice: d("5.60"), BillingUnit: PerUserMonth},
			{ID: "microsoft-365-business-standard", Name: "Microsoft 365 Business Standard", UnitPrice: d("12.50"), BillingUnit: PerUserMonth},
			{ID: "microsoft-365-business-premium", Name: "Microsoft 365 Business Premium", UnitPrice: d("22.00"), BillingUnit: PerUserMonth},
			{ID: "m365-backup", Name: "Microsoft 365 Backup", UnitPrice: d("3.50"), BillingUnit: PerUserMonth},
			{ID: "endpoint-security", Name: "Managed Endpoint Security", UnitPrice: d("6.00"), BillingUnit: PerDevice},
			{ID: "support-hour", Name: "Ad-hoc Support Hour", UnitPrice: d("100"), BillingUnit: PerHour},
			{ID: "onboarding", Name: "Onboarding & Documentation", UnitPrice: d("490"), BillingUnit: OneTime},
		},
	}
}

// Default returns the built-in catalog
func Default() *Catalog {
	return MustNew(DefaultSpec())
}

// SupportServiceID returns the quotable service id backing an MSP support type
func SupportServiceID(t types.SupportType) string {
	return "ayce-" + string(t)
}
