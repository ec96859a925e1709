// Package types - Pricing types
package types

// BillingPeriod is the invoicing cadence chosen by the customer
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

// IsYearly reports whether the yearly-billing incentive applies
func (b BillingPeriod) IsYearly() bool {
	return b == BillingYearly
}

// Language selects the locale used for presentation
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// String returns the string representation
func (l Language) String() string {
	return string(l)
}
