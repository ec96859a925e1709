package output

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/types"
)

// CatalogView is the published shape of a catalog
type CatalogView struct {
	Version               string                                `json:"version"`
	Fingerprint           string                                `json:"fingerprint"`
	Currency              types.Currency                        `json:"currency"`
	YearlyBillingDiscount decimal.Decimal                       `json:"yearlyBillingDiscount"`
	Adhoc                 catalog.Adhoc                         `json:"adhoc"`
	Bundles               []catalog.Bundle                      `json:"bundles"`
	MSPPlans              map[types.SupportType]catalog.MSPPlan `json:"mspPlans"`
	SLAOptions            map[types.SLALevel]catalog.SLAOption  `json:"slaOptions"`
	VolumeTiers           []catalog.VolumeTier                  `json:"volumeTiers"`
	Services              []catalog.Service                     `json:"services"`
}

// NewCatalogView flattens cat for serialization
func NewCatalogView(cat *catalog.Catalog) *CatalogView {
	spec := cat.Spec()
	return &CatalogView{
		Version:               cat.Version(),
		Fingerprint:           cat.Fingerprint().Hex(),
		Currency:              cat.Currency(),
		YearlyBillingDiscount: cat.YearlyBillingDiscount(),
		Adhoc:                 cat.Adhoc(),
		Bundles:               cat.Bundles(),
		MSPPlans:              spec.MSPPlans,
		SLAOptions:            spec.SLAOptions,
		VolumeTiers:           cat.VolumeTiers(),
		Services:              cat.Services(),
	}
}

// JSONFormatter writes the report payload as JSON
type JSONFormatter struct {
	// Indent pretty-prints the output
	Indent bool
}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the single payload of report, not the envelope
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	if err := report.validate(); err != nil {
		return err
	}

	var payload any
	switch {
	case report.Result != nil:
		payload = report.Result
	case report.Comparison != nil:
		payload = report.Comparison
	case report.Quote != nil:
		payload = report.Quote
	case report.Catalog != nil:
		payload = NewCatalogView(report.Catalog)
	}

	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(payload)
}
