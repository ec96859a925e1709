// Package catalog - HCL catalog files
// Operators override the built-in catalog with a file such as:
//
//	version                 = "2025.2"
//	currency                = "EUR"
//	yearly_billing_discount = 0.10
//
//	adhoc {
//	  hourly_rate              = 100
//	  estimated_hours_per_user = 0.5
//	}
//
//	bundle {
//	  hours = 10
//	  price = 950
//	}
//	msp_plan "remote" { price_per_user = 60 }
//	sla "standard" {
//	  response_time = "8h"
//	  availability  = "Mon-Fri 09:00-17:00"
//	  multiplier    = 1.0
//	}
//	volume_tier {
//	  min_users        = 25
//	  discount_percent = 10
//	}
//	service "ayce-remote" {
//	  name         = "All-You-Can-Eat Remote Support"
//	  unit_price   = 60
//	  billing_unit = "user/month"
//	}
package catalog

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

type hclFile struct {
	Version               string         `hcl:"version"`
	Currency              string         `hcl:"currency,optional"`
	YearlyBillingDiscount hcl.Expression `hcl:"yearly_billing_discount"`
	Adhoc                 hclAdhoc       `hcl:"adhoc,block"`
	Bundles               []hclBundle    `hcl:"bundle,block"`
	Plans                 []hclPlan      `hcl:"msp_plan,block"`
	SLAs                  []hclSLA       `hcl:"sla,block"`
	Tiers                 []hclTier      `hcl:"volume_tier,block"`
	Services              []hclService   `hcl:"service,block"`
}

type hclAdhoc struct {
	HourlyRate            hcl.Expression `hcl:"hourly_rate"`
	EstimatedHoursPerUser hcl.Expression `hcl:"estimated_hours_per_user"`
}

type hclBundle struct {
	Hours int            `hcl:"hours"`
	Price hcl.Expression `hcl:"price"`
}

type hclPlan struct {
	Type         string         `hcl:"type,label"`
	PricePerUser hcl.Expression `hcl:"price_per_user"`
}

type hclSLA struct {
	Level        string         `hcl:"level,label"`
	ResponseTime string         `hcl:"response_time"`
	Availability string         `hcl:"availability"`
	Multiplier   hcl.Expression `hcl:"multiplier"`
}

type hclTier struct {
	MinUsers        int            `hcl:"min_users"`
	DiscountPercent hcl.Expression `hcl:"discount_percent"`
}

type hclService struct {
	ID          string         `hcl:"id,label"`
	Name        string         `hcl:"name"`
	UnitPrice   hcl.Expression `hcl:"unit_price"`
	BillingUnit string         `hcl:"billing_unit"`
}

// LoadFile reads, decodes and validates an HCL catalog file
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read catalog file", err).WithContext("path", path)
	}
	return Parse(src, path)
}

// Parse decodes and validates an HCL catalog from src
func Parse(src []byte, filename string) (*Catalog, error) {
	spec, err := ParseSpec(src, filename)
	if err != nil {
		return nil, err
	}
	return New(spec)
}

// ParseSpec decodes an HCL catalog without validating it
func ParseSpec(src []byte, filename string) (Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Spec{}, errors.Config("failed to parse catalog file", diags).WithContext("path", filename)
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Spec{}, errors.Config("failed to decode catalog file", diags).WithContext("path", filename)
	}

	d := &decoder{}
	spec := Spec{
		Version:               raw.Version,
		Currency:              types.Currency(raw.Currency),
		YearlyBillingDiscount: d.number(raw.YearlyBillingDiscount),
		Adhoc: Adhoc{
			HourlyRate:            d.number(raw.Adhoc.HourlyRate),
			EstimatedHoursPerUser: d.number(raw.Adhoc.EstimatedHoursPerUser),
		},
		MSPPlans:   make(map[types.SupportType]MSPPlan, len(raw.Plans)),
		SLAOptions: make(map[types.SLALevel]SLAOption, len(raw.SLAs)),
	}
	if spec.Currency == "" {
		spec.Currency = types.CurrencyEUR
	}

	for _, b := range raw.Bundles {
		spec.Bundles = append(spec.Bundles, BundleSpec{Hours: b.Hours, Price: d.number(b.Price)})
	}
	for _, p := range raw.Plans {
		key := types.SupportType(p.Type)
		if _, dup := spec.MSPPlans[key]; dup {
			d.errorf(nil, "Duplicate msp_plan", "msp_plan %q is defined more than once", p.Type)
		}
		spec.MSPPlans[key] = MSPPlan{PricePerUser: d.number(p.PricePerUser)}
	}
	for _, s := range raw.SLAs {
		key := types.SLALevel(s.Level)
		if _, dup := spec.SLAOptions[key]; dup {
			d.errorf(nil, "Duplicate sla", "sla %q is defined more than once", s.Level)
		}
		spec.SLAOptions[key] = SLAOption{
			ResponseTime: s.ResponseTime,
			Availability: s.Availability,
			Multiplier:   d.number(s.Multiplier),
		}
	}
	for _, t := range raw.Tiers {
		spec.VolumeTiers = append(spec.VolumeTiers, VolumeTier{MinUsers: t.MinUsers, DiscountPercent: d.number(t.DiscountPercent)})
	}
	for _, s := range raw.Services {
		spec.Services = append(spec.Services, Service{
			ID:          s.ID,
			Name:        s.Name,
			UnitPrice:   d.number(s.UnitPrice),
			BillingUnit: BillingUnit(s.BillingUnit),
		})
	}

	if d.diags.HasErrors() {
		return Spec{}, errors.Config("invalid values in catalog file", d.diags).WithContext("path", filename)
	}
	return spec, nil
}

// decoder accumulates diagnostics while converting expressions to decimals
type decoder struct {
	diags hcl.Diagnostics
}

// number evaluates expr as an exact decimal. Numeric strings are accepted.
func (d *decoder) number(expr hcl.Expression) decimal.Decimal {
	val, diags := expr.Value(nil)
	d.diags = append(d.diags, diags...)
	if diags.HasErrors() {
		return decimal.Zero
	}

	rng := expr.Range()
	if val.IsNull() || !val.IsWhollyKnown() {
		d.errorf(&rng, "Number required", "value must be a known number")
		return decimal.Zero
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		d.errorf(&rng, "Number required", "cannot use %s as a number: %v", val.Type().FriendlyName(), err)
		return decimal.Zero
	}

	out, err := decimal.NewFromString(num.AsBigFloat().Text('f', -1))
	if err != nil {
		d.errorf(&rng, "Number required", "cannot represent value as a decimal: %v", err)
		return decimal.Zero
	}
	return out
}

func (d *decoder) errorf(subject *hcl.Range, summary, format string, args ...interface{}) {
	d.diags = append(d.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  subject,
	})
}
