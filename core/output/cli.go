package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/determinism"
	"msp-pricing/core/pricing"
	"msp-pricing/core/quote"
	"msp-pricing/core/savings"
	"msp-pricing/core/types"
)

const rule = "─────────────────────────────────────────────────────────────"

type valueKind int

const (
	kindMoney valueKind = iota
	kindNumber
	kindFraction
	kindPercent
	kindMultiplier
)

type breakdownField struct {
	label string
	kind  valueKind
}

var breakdownFields = map[string]breakdownField{
	pricing.KeyPricePerUser:     {"Price per user", kindMoney},
	pricing.KeyVolumeDiscount:   {"Volume discount", kindFraction},
	pricing.KeyDiscountAmount:   {"Discount amount", kindMoney},
	pricing.KeyBasePricePerUser: {"Base price per user", kindMoney},
	pricing.KeySLAMultiplier:    {"SLA multiplier", kindMultiplier},
	pricing.KeyHourlyRate:       {"Hourly rate", kindMoney},
	pricing.KeyEstimatedHours:   {"Estimated hours", kindNumber},
	pricing.KeyBundleHours:      {"Bundle hours", kindNumber},
	pricing.KeyBundlePrice:      {"Bundle price", kindMoney},
	pricing.KeyBundlesNeeded:    {"Bundles needed", kindNumber},
	pricing.KeyBundleDiscount:   {"Bundle discount", kindPercent},
}

var modelTitles = map[types.PricingModel]string{
	types.ModelAdhoc:   "Ad-hoc support",
	types.ModelPrepaid: "Pre-paid hour bundle",
	types.ModelMSP:     "Managed service (MSP)",
}

func formatValue(v decimal.Decimal, kind valueKind, lang types.Language) string {
	switch kind {
	case kindMoney:
		return FormatEuro(v, lang)
	case kindFraction:
		return FormatPercent(v.Mul(types.Hundred), lang)
	case kindPercent:
		return FormatPercent(v, lang)
	case kindMultiplier:
		return "x" + v.String()
	default:
		return v.String()
	}
}

type breakdownRow struct {
	label string
	value string
}

// breakdownRows lists a result's breakdown in key order
func breakdownRows(r *pricing.Result, lang types.Language) []breakdownRow {
	var rows []breakdownRow
	determinism.RangeMapSorted(r.Breakdown, func(key string, v decimal.Decimal) bool {
		field, ok := breakdownFields[key]
		if !ok {
			field = breakdownField{label: key, kind: kindNumber}
		}
		rows = append(rows, breakdownRow{label: field.label, value: formatValue(v, field.kind, lang)})
		return true
	})
	return rows
}

// CLIFormatter renders boxed plain-text tables for a terminal
type CLIFormatter struct{}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes report as text
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	if err := report.validate(); err != nil {
		return err
	}
	lang := report.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch {
	case report.Result != nil:
		f.result(tw, report.Result, report.Users, lang)
	case report.Comparison != nil:
		f.comparison(tw, report.Comparison, lang)
	case report.Quote != nil:
		f.quote(tw, report.Quote, lang)
	case report.Catalog != nil:
		f.catalog(tw, report.Catalog, lang)
	}
	return tw.Flush()
}

func header(w io.Writer, title string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " %s\n", strings.ToUpper(title))
	fmt.Fprintln(w, rule)
}

func (f *CLIFormatter) result(w io.Writer, r *pricing.Result, users int, lang types.Language) {
	header(w, modelTitles[r.Model])
	if users > 0 {
		fmt.Fprintf(w, "Users\t%d\n", users)
	}
	for _, row := range breakdownRows(r, lang) {
		fmt.Fprintf(w, "%s\t%s\n", row.label, row.value)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Monthly total\t%s\n", FormatEuro(r.MonthlyTotal, lang))
	fmt.Fprintf(w, "Yearly total\t%s\n", FormatEuro(r.YearlyTotal, lang))
}

func (f *CLIFormatter) comparison(w io.Writer, c *pricing.Comparison, lang types.Language) {
	header(w, fmt.Sprintf("Pricing comparison for %d users", c.Input.Users))
	fmt.Fprintln(w, "Model\tMonthly\tYearly")
	for _, r := range []*pricing.Result{c.Adhoc, c.Prepaid, c.MSP} {
		fmt.Fprintf(w, "%s\t%s\t%s\n", modelTitles[r.Model], FormatEuro(r.MonthlyTotal, lang), FormatEuro(r.YearlyTotal, lang))
	}
	fmt.Fprintln(w, rule)
	savingsLines(w, "MSP vs ad-hoc", c.MSPSavings, lang)
	savingsLines(w, "Pre-paid vs ad-hoc", c.PrepaidSavings, lang)

	if next := c.VolumeTier.Next; next != nil && next.DiscountPercent.IsPositive() {
		fmt.Fprintf(w, "Next volume tier\t%d more users unlock %s\n", c.VolumeTier.UsersToNext, FormatPercent(next.DiscountPercent, lang))
	}
}

func savingsLines(w io.Writer, label string, s savings.Result, lang types.Language) {
	verb := "saves"
	if !s.IsSaving() {
		verb = "costs"
	}
	monthly := s.Monthly.Abs()
	fmt.Fprintf(w, "%s\t%s %s/month (%s), %s over 3 years, %s over 5 years\n",
		label, verb, FormatEuro(monthly, lang), FormatPercent(s.Percentage.Abs(), lang),
		FormatEuro(s.ThreeYear.Abs(), lang), FormatEuro(s.FiveYear.Abs(), lang))
}

func (f *CLIFormatter) quote(w io.Writer, q *quote.Quote, lang types.Language) {
	header(w, "Quote "+quote.Reference(q))
	fmt.Fprintf(w, "Billing\t%s\n", q.Period())
	fmt.Fprintln(w, "Service\tQty\tUnit price\tUnit\tTotal")
	for _, li := range q.LineItems {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", li.Name, li.Quantity, FormatEuro(li.UnitPrice, lang), li.BillingUnit, FormatEuro(li.LineTotal, lang))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Subtotal\t\t\t\t%s\n", FormatEuro(q.Subtotal, lang))
	if q.Period().IsYearly() {
		fmt.Fprintf(w, "Yearly billing discount\t\t\t\t-%s\n", FormatEuro(q.Discount, lang))
	}
	fmt.Fprintf(w, "Total\t\t\t\t%s\n", FormatEuro(q.Total, lang))
}

func (f *CLIFormatter) catalog(w io.Writer, cat *catalog.Catalog, lang types.Language) {
	header(w, fmt.Sprintf("Catalog %s (%s)", cat.Version(), cat.Fingerprint().Short()))

	adhoc := cat.Adhoc()
	fmt.Fprintf(w, "Ad-hoc hourly rate\t%s\n", FormatEuro(adhoc.HourlyRate, lang))
	fmt.Fprintf(w, "Estimated hours per user\t%s\n", adhoc.EstimatedHoursPerUser)
	fmt.Fprintf(w, "Yearly billing discount\t%s\n", FormatPercent(cat.YearlyBillingDiscount().Mul(types.Hundred), lang))

	fmt.Fprintln(w, "\nBundle\tPrice\tHourly rate\tDiscount")
	for i, b := range cat.Bundles() {
		fmt.Fprintf(w, "[%d] %dh\t%s\t%s\t%s\n", i, b.Hours, FormatEuro(b.Price, lang), FormatEuro(b.HourlyRate, lang), FormatPercent(b.Discount.Round(1), lang))
	}

	fmt.Fprintln(w, "\nMSP plan\tPrice per user")
	for _, t := range cat.SupportTypes() {
		plan, _ := cat.MSPPlan(t)
		fmt.Fprintf(w, "%s\t%s\n", t, FormatEuro(plan.PricePerUser, lang))
	}

	fmt.Fprintln(w, "\nSLA\tResponse\tAvailability\tMultiplier")
	for _, l := range cat.SLALevels() {
		sla, _ := cat.SLA(l)
		fmt.Fprintf(w, "%s\t%s\t%s\tx%s\n", l, sla.ResponseTime, sla.Availability, sla.Multiplier)
	}

	fmt.Fprintln(w, "\nFrom users\tVolume discount")
	for _, tier := range cat.VolumeTiers() {
		fmt.Fprintf(w, "%d\t%s\n", tier.MinUsers, FormatPercent(tier.DiscountPercent, lang))
	}

	fmt.Fprintln(w, "\nService\tName\tPrice\tUnit")
	for _, s := range cat.Services() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, FormatEuro(s.UnitPrice, lang), s.BillingUnit)
	}
}
