package output

import (
	"fmt"
	"io"
	"strings"

	"msp-pricing/core/pricing"
	"msp-pricing/core/quote"
	"msp-pricing/core/types"
)

// MarkdownFormatter renders GitHub-flavoured markdown tables
type MarkdownFormatter struct{}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes report as markdown
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	if err := report.validate(); err != nil {
		return err
	}
	lang := report.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	var b strings.Builder
	switch {
	case report.Result != nil:
		f.result(&b, report.Result, lang)
	case report.Comparison != nil:
		f.comparison(&b, report.Comparison, lang)
	case report.Quote != nil:
		f.quote(&b, report.Quote, lang)
	case report.Catalog != nil:
		b.WriteString("## Catalog " + report.Catalog.Version() + "\n\n")
		b.WriteString("| Service | Name | Price | Unit |\n|---|---|---:|---|\n")
		for _, s := range report.Catalog.Services() {
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", s.ID, s.Name, FormatEuro(s.UnitPrice, lang), s.BillingUnit)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *MarkdownFormatter) result(b *strings.Builder, r *pricing.Result, lang types.Language) {
	fmt.Fprintf(b, "## %s\n\n", modelTitles[r.Model])
	b.WriteString("| | |\n|---|---:|\n")
	for _, row := range breakdownRows(r, lang) {
		fmt.Fprintf(b, "| %s | %s |\n", row.label, row.value)
	}
	fmt.Fprintf(b, "| **Monthly total** | **%s** |\n", FormatEuro(r.MonthlyTotal, lang))
	fmt.Fprintf(b, "| **Yearly total** | **%s** |\n", FormatEuro(r.YearlyTotal, lang))
}

func (f *MarkdownFormatter) comparison(b *strings.Builder, c *pricing.Comparison, lang types.Language) {
	fmt.Fprintf(b, "## Pricing comparison for %d users\n\n", c.Input.Users)
	b.WriteString("| Model | Monthly | Yearly |\n|---|---:|---:|\n")
	for _, r := range []*pricing.Result{c.Adhoc, c.Prepaid, c.MSP} {
		fmt.Fprintf(b, "| %s | %s | %s |\n", modelTitles[r.Model], FormatEuro(r.MonthlyTotal, lang), FormatEuro(r.YearlyTotal, lang))
	}
	fmt.Fprintf(b, "\nMSP saves **%s** per month (%s) against ad-hoc support.\n",
		FormatEuro(c.MSPSavings.Monthly, lang), FormatPercent(c.MSPSavings.Percentage, lang))
}

func (f *MarkdownFormatter) quote(b *strings.Builder, q *quote.Quote, lang types.Language) {
	fmt.Fprintf(b, "## Quote %s\n\n", quote.Reference(q))
	b.WriteString("| Service | Qty | Unit price | Total |\n|---|---:|---:|---:|\n")
	for _, li := range q.LineItems {
		fmt.Fprintf(b, "| %s | %d | %s | %s |\n", li.Name, li.Quantity, FormatEuro(li.UnitPrice, lang), FormatEuro(li.LineTotal, lang))
	}
	fmt.Fprintf(b, "| Subtotal | | | %s |\n", FormatEuro(q.Subtotal, lang))
	if q.Period().IsYearly() {
		fmt.Fprintf(b, "| Yearly billing discount | | | -%s |\n", FormatEuro(q.Discount, lang))
	}
	fmt.Fprintf(b, "| **Total** | | | **%s** |\n", FormatEuro(q.Total, lang))
}
