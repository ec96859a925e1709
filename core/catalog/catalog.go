// Package catalog - Authoritative pricing catalog
// Holds every rate the calculators and the quote generator are allowed to use.
// A Catalog is immutable once built; share it freely between goroutines.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"msp-pricing/core/determinism"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

// BillingUnit describes what a service's unit price is charged per
type BillingUnit string

const (
	PerUserMonth BillingUnit = "user/month"
	PerHour      BillingUnit = "hour"
	PerDevice    BillingUnit = "device/month"
	OneTime      BillingUnit = "one-time"
)

// Adhoc holds the reactive, pay-per-hour rates
type Adhoc struct {
	// HourlyRate is the list price of one support hour
	HourlyRate decimal.Decimal `json:"hourlyRate"`

	// EstimatedHoursPerUser is the assumed reactive support demand per user per month.
	// Both the ad-hoc and the pre-paid calculators scale by it.
	EstimatedHoursPerUser decimal.Decimal `json:"estimatedHoursPerUser"`
}

// BundleSpec is a bundle as configured: hours and price only
type BundleSpec struct {
	Hours int             `json:"hours"`
	Price decimal.Decimal `json:"price"`
}

// Bundle is a pre-paid block of support hours
type Bundle struct {
	Hours      int             `json:"hours"`
	Price      decimal.Decimal `json:"price"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`

	// Discount is the percentage saved against the ad-hoc hourly rate
	Discount decimal.Decimal `json:"discount"`
}

// MSPPlan is the managed-service fee for one support type
type MSPPlan struct {
	PricePerUser decimal.Decimal `json:"pricePerUser"`
}

// SLAOption describes one SLA level
type SLAOption struct {
	ResponseTime string          `json:"responseTime"`
	Availability string          `json:"availability"`
	Multiplier   decimal.Decimal `json:"multiplier"`
}

// VolumeTier unlocks DiscountPercent from MinUsers upwards
type VolumeTier struct {
	MinUsers        int             `json:"minUsers"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// Service is a quotable catalog item
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	BillingUnit BillingUnit     `json:"billingUnit"`
}

// Spec is the raw, unvalidated catalog definition.
// It is what the HCL loader decodes and what Default() fills in.
type Spec struct {
	Version  string         `json:"version"`
	Currency types.Currency `json:"currency"`

	// YearlyBillingDiscount is the fraction taken off when billed yearly
	YearlyBillingDiscount decimal.Decimal `json:"yearlyBillingDiscount"`

	Adhoc       Adhoc                         `json:"adhoc"`
	Bundles     []BundleSpec                  `json:"bundles"`
	MSPPlans    map[types.SupportType]MSPPlan `json:"mspPlans"`
	SLAOptions  map[types.SLALevel]SLAOption  `json:"slaOptions"`
	VolumeTiers []VolumeTier                  `json:"volumeTiers"`
	Services    []Service                     `json:"services"`
}

// Catalog is the validated, immutable pricing catalog
type Catalog struct {
	version               string
	currency              types.Currency
	yearlyBillingDiscount decimal.Decimal
	adhoc                 Adhoc
	bundles               []Bundle
	mspPlans              map[types.SupportType]MSPPlan
	slaOptions            map[types.SLALevel]SLAOption
	volumeTiers           []VolumeTier
	services              map[string]Service
	serviceOrder          []string
	fingerprint           determinism.ContentHash
}

// New validates spec and builds an immutable catalog from a deep copy of it
func New(spec Spec) (*Catalog, error) {
	if errs := spec.Validate(DefaultValidationRules()); len(errs) > 0 {
		return nil, errors.Config("invalid pricing catalog", joinErrors(errs)).
			WithContext("violations", len(errs))
	}

	c := &Catalog{
		version:               spec.Version,
		currency:              spec.Currency,
		yearlyBillingDiscount: spec.YearlyBillingDiscount,
		adhoc:                 spec.Adhoc,
		mspPlans:              make(map[types.SupportType]MSPPlan, len(spec.MSPPlans)),
		slaOptions:            make(map[types.SLALevel]SLAOption, len(spec.SLAOptions)),
		volumeTiers:           append([]VolumeTier(nil), spec.VolumeTiers...),
		services:              make(map[string]Service, len(spec.Services)),
	}
	if c.currency == "" {
		c.currency = types.CurrencyEUR
	}

	for _, b := range spec.Bundles {
		c.bundles = append(c.bundles, deriveBundle(b, spec.Adhoc.HourlyRate))
	}
	for k, v := range spec.MSPPlans {
		c.mspPlans[k] = v
	}
	for k, v := range spec.SLAOptions {
		c.slaOptions[k] = v
	}
	for _, s := range spec.Services {
		c.services[s.ID] = s
		c.serviceOrder = append(c.serviceOrder, s.ID)
	}

	c.fingerprint = determinism.MustHashJSON(c.Spec())
	return c, nil
}

// MustNew is New for catalogs that are known to be valid
func MustNew(spec Spec) *Catalog {
	c, err := New(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// deriveBundle fills in the blended rate and the saving against ad-hoc
func deriveBundle(b BundleSpec, adhocRate decimal.Decimal) Bundle {
	rate := b.Price.Div(decimal.NewFromInt(int64(b.Hours)))
	saving := decimal.Zero
	if adhocRate.IsPositive() {
		saving = decimal.NewFromInt(1).Sub(rate.Div(adhocRate)).Mul(types.Hundred).Round(2)
	}
	return Bundle{
		Hours:      b.Hours,
		Price:      b.Price,
		HourlyRate: rate,
		Discount:   saving,
	}
}

// Version returns the catalog version label
func (c *Catalog) Version() string { return c.version }

// Currency returns the catalog currency
func (c *Catalog) Currency() types.Currency { return c.currency }

// Fingerprint returns the content hash of the catalog
func (c *Catalog) Fingerprint() determinism.ContentHash { return c.fingerprint }

// YearlyBillingDiscount returns the yearly-billing reduction as a fraction
func (c *Catalog) YearlyBillingDiscount() decimal.Decimal { return c.yearlyBillingDiscount }

// YearlyBillingFactor returns 1 - YearlyBillingDiscount
func (c *Catalog) YearlyBillingFactor() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(c.yearlyBillingDiscount)
}

// Adhoc returns the ad-hoc rates
func (c *Catalog) Adhoc() Adhoc { return c.adhoc }

// Bundles returns a copy of the bundle table, ordered by hours
func (c *Catalog) Bundles() []Bundle {
	return append([]Bundle(nil), c.bundles...)
}

// Bundle returns the bundle at index
func (c *Catalog) Bundle(index int) (Bundle, error) {
	if index < 0 || index >= len(c.bundles) {
		return Bundle{}, errors.InvalidInput("bundle index %d out of range [0, %d)", index, len(c.bundles)).
			WithContext("bundle_index", index)
	}
	return c.bundles[index], nil
}

// VolumeTiers returns a copy of the volume tier table, ordered by MinUsers
func (c *Catalog) VolumeTiers() []VolumeTier {
	return append([]VolumeTier(nil), c.volumeTiers...)
}

// MSPPlan returns the plan for a support type
func (c *Catalog) MSPPlan(t types.SupportType) (MSPPlan, error) {
	plan, ok := c.mspPlans[t]
	if !ok {
		return MSPPlan{}, errors.UnknownKey("support type", string(t))
	}
	return plan, nil
}

// SLA returns the option for an SLA level
func (c *Catalog) SLA(level types.SLALevel) (SLAOption, error) {
	opt, ok := c.slaOptions[level]
	if !ok {
		return SLAOption{}, errors.UnknownKey("SLA level", string(level))
	}
	return opt, nil
}

// SupportTypes returns the configured support types in sorted order
func (c *Catalog) SupportTypes() []types.SupportType {
	return determinism.SortedKeys(c.mspPlans)
}

// SLALevels returns the configured SLA levels ordered by multiplier
func (c *Catalog) SLALevels() []types.SLALevel {
	levels := determinism.SortedKeys(c.slaOptions)
	sort.SliceStable(levels, func(i, j int) bool {
		return c.slaOptions[levels[i]].Multiplier.LessThan(c.slaOptions[levels[j]].Multiplier)
	})
	return levels
}

// ParseSupportType resolves a user-supplied support type against the catalog
func (c *Catalog) ParseSupportType(s string) (types.SupportType, error) {
	t := types.SupportType(s)
	if _, err := c.MSPPlan(t); err != nil {
		return "", err
	}
	return t, nil
}

// ParseSLALevel resolves a user-supplied SLA level against the catalog
func (c *Catalog) ParseSLALevel(s string) (types.SLALevel, error) {
	l := types.SLALevel(s)
	if _, err := c.SLA(l); err != nil {
		return "", err
	}
	return l, nil
}

// Service returns the service with id
func (c *Catalog) Service(id string) (Service, error) {
	s, ok := c.services[id]
	if !ok {
		return Service{}, errors.UnknownService(id)
	}
	return s, nil
}

// Services returns all services in catalog order
func (c *Catalog) Services() []Service {
	out := make([]Service, 0, len(c.serviceOrder))
	for _, id := range c.serviceOrder {
		out = append(out, c.services[id])
	}
	return out
}

// Spec returns a copy of the catalog in its definition form
func (c *Catalog) Spec() Spec {
	spec := Spec{
		Version:               c.version,
		Currency:              c.currency,
		YearlyBillingDiscount: c.yearlyBillingDiscount,
		Adhoc:                 c.adhoc,
		MSPPlans:              make(map[types.SupportType]MSPPlan, len(c.mspPlans)),
		SLAOptions:            make(map[types.SLALevel]SLAOption, len(c.slaOptions)),
		VolumeTiers:           c.VolumeTiers(),
		Services:              c.Services(),
	}
	for _, b := range c.bundles {
		spec.Bundles = append(spec.Bundles, BundleSpec{Hours: b.Hours, Price: b.Price})
	}
	for k, v := range c.mspPlans {
		spec.MSPPlans[k] = v
	}
	for k, v := range c.slaOptions {
		spec.SLAOptions[k] = v
	}
	return spec
}
