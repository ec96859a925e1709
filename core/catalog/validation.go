// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"

	"msp-pricing/core/determinism"
	"msp-pricing/core/types"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Spec) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateAdhoc,
		validateYearlyDiscount,
		validateBundles,
		validateMSPPlans,
		validateSLAOptions,
		validateVolumeTiers,
		validateServices,
	}
}

// Validate checks a catalog spec against validation rules
func (s *Spec) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(s)...)
	}
	return errs
}

func validateAdhoc(s *Spec) []error {
	var errs []error
	if !s.Adhoc.HourlyRate.IsPositive() {
		errs = append(errs, fmt.Errorf("adhoc: hourly rate must be positive, got %s", s.Adhoc.HourlyRate))
	}
	if !s.Adhoc.EstimatedHoursPerUser.IsPositive() {
		errs = append(errs, fmt.Errorf("adhoc: estimated hours per user must be positive, got %s", s.Adhoc.EstimatedHoursPerUser))
	}
	return errs
}

func validateYearlyDiscount(s *Spec) []error {
	d := s.YearlyBillingDiscount
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return []error{fmt.Errorf("yearly billing discount must be in [0, 1), got %s", d)}
	}
	return nil
}

// validateBundles requires a non-empty table whose blended hourly rate
// strictly falls as the hours grow
func validateBundles(s *Spec) []error {
	if len(s.Bundles) == 0 {
		return []error{fmt.Errorf("bundles: at least one bundle is required")}
	}

	var errs []error
	// ordering is checked against the last well-formed bundle only
	prev := -1
	var prevRate decimal.Decimal
	for i, b := range s.Bundles {
		if b.Hours <= 0 {
			errs = append(errs, fmt.Errorf("bundle[%d]: hours must be positive, got %d", i, b.Hours))
			continue
		}
		if !b.Price.IsPositive() {
			errs = append(errs, fmt.Errorf("bundle[%d]: price must be positive, got %s", i, b.Price))
			continue
		}
		rate := b.Price.Div(decimal.NewFromInt(int64(b.Hours)))
		if prev >= 0 {
			prevHours := s.Bundles[prev].Hours
			if b.Hours <= prevHours {
				errs = append(errs, fmt.Errorf("bundle[%d]: hours must increase, %d after %d", i, b.Hours, prevHours))
			}
			if !rate.LessThan(prevRate) {
				errs = append(errs, fmt.Errorf("bundle[%d]: hourly rate %s must be below bundle[%d]'s %s", i, rate, prev, prevRate))
			}
		}
		prev, prevRate = i, rate
	}
	return errs
}

func validateMSPPlans(s *Spec) []error {
	if len(s.MSPPlans) == 0 {
		return []error{fmt.Errorf("msp plans: at least one plan is required")}
	}
	var errs []error
	determinism.RangeMapSorted(s.MSPPlans, func(t types.SupportType, p MSPPlan) bool {
		if !p.PricePerUser.IsPositive() {
			errs = append(errs, fmt.Errorf("msp plan %q: price per user must be positive, got %s", t, p.PricePerUser))
		}
		return true
	})
	return errs
}

func validateSLAOptions(s *Spec) []error {
	if len(s.SLAOptions) == 0 {
		return []error{fmt.Errorf("sla options: at least one level is required")}
	}
	var errs []error
	one := decimal.NewFromInt(1)
	determinism.RangeMapSorted(s.SLAOptions, func(l types.SLALevel, o SLAOption) bool {
		if o.Multiplier.LessThan(one) {
			errs = append(errs, fmt.Errorf("sla %q: multiplier must be >= 1, got %s", l, o.Multiplier))
		}
		return true
	})
	return errs
}

// validateVolumeTiers requires both MinUsers and DiscountPercent to strictly increase
func validateVolumeTiers(s *Spec) []error {
	var errs []error
	for i, t := range s.VolumeTiers {
		if t.MinUsers < 1 {
			errs = append(errs, fmt.Errorf("volume tier[%d]: min users must be >= 1, got %d", i, t.MinUsers))
		}
		if t.DiscountPercent.IsNegative() || t.DiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			errs = append(errs, fmt.Errorf("volume tier[%d]: discount must be in [0, 100), got %s", i, t.DiscountPercent))
		}
		if i == 0 {
			continue
		}
		prev := s.VolumeTiers[i-1]
		if t.MinUsers <= prev.MinUsers {
			errs = append(errs, fmt.Errorf("volume tier[%d]: min users %d must exceed %d", i, t.MinUsers, prev.MinUsers))
		}
		if !t.DiscountPercent.GreaterThan(prev.DiscountPercent) {
			errs = append(errs, fmt.Errorf("volume tier[%d]: discount %s must exceed %s", i, t.DiscountPercent, prev.DiscountPercent))
		}
	}
	return errs
}

func validateServices(s *Spec) []error {
	var errs []error
	seen := make(map[string]bool, len(s.Services))
	for i, svc := range s.Services {
		if svc.ID == "" {
			errs = append(errs, fmt.Errorf("service[%d]: id is required", i))
			continue
		}
		if seen[svc.ID] {
			errs = append(errs, fmt.Errorf("service %q: duplicate id", svc.ID))
		}
		seen[svc.ID] = true
		if svc.UnitPrice.IsNegative() {
			errs = append(errs, fmt.Errorf("service %q: unit price must not be negative, got %s", svc.ID, svc.UnitPrice))
		}
	}
	return errs
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
