// Package export builds the document handed to the external PDF renderer.
// Amounts stay numeric euros; the display strings next to them are a
// convenience so the renderer needs no locale logic of its own.
package export

import (
	"encoding/json"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"msp-pricing/core/output"
	"msp-pricing/core/quote"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

// Document is the payload handed to the PDF renderer
type Document struct {
	Reference   string         `json:"reference"`
	Quote       *quote.Quote   `json:"quote"`
	IsYearly    bool           `json:"isYearly"`
	Language    types.Language `json:"language"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Display     Display        `json:"display"`
	Labels      Labels         `json:"labels"`
}

// Display holds the quote amounts pre-formatted for Language
type Display struct {
	LineItems     []DisplayLine `json:"lineItems"`
	Subtotal      string        `json:"subtotal"`
	Discount      string        `json:"discount,omitempty"`
	Total         string        `json:"total"`
	BillingPeriod string        `json:"billingPeriod"`
}

// DisplayLine is one formatted line item
type DisplayLine struct {
	ServiceID string `json:"serviceId"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

// Labels are the translated captions of the document
type Labels struct {
	Title     string `json:"title"`
	Service   string `json:"service"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
	Subtotal  string `json:"subtotal"`
	Discount  string `json:"discount"`
	Total     string `json:"total"`
}

// Clock returns the generation timestamp; tests replace it
var Clock = func() time.Time { return time.Now().UTC() }

// NewDocument wraps q for the PDF renderer.
// isYearly must agree with the billing period q was priced for.
func NewDocument(q *quote.Quote, isYearly bool, lang types.Language) (*Document, error) {
	if q == nil {
		return nil, errors.InvalidInput("no quote to export")
	}
	if q.IsYearly != isYearly {
		return nil, errors.InvalidInput("quote was priced with isYearly=%t, export requested isYearly=%t", q.IsYearly, isYearly)
	}
	if lang != types.LanguageGerman && lang != types.LanguageEnglish {
		return nil, errors.UnknownKey("language", string(lang))
	}

	doc := &Document{
		Reference:   quote.Reference(q),
		Quote:       q,
		IsYearly:    isYearly,
		Language:    lang,
		GeneratedAt: Clock(),
		Labels:      labels(lang),
	}

	p := printer(lang)
	doc.Display.LineItems = make([]DisplayLine, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		doc.Display.LineItems = append(doc.Display.LineItems, DisplayLine{
			ServiceID: li.ServiceID,
			UnitPrice: output.FormatEuro(li.UnitPrice, lang),
			LineTotal: output.FormatEuro(li.LineTotal, lang),
		})
	}
	doc.Display.Subtotal = output.FormatEuro(q.Subtotal, lang)
	doc.Display.Total = output.FormatEuro(q.Total, lang)
	switch q.Period() {
	case types.BillingYearly:
		doc.Display.Discount = "-" + output.FormatEuro(q.Discount, lang)
		doc.Display.BillingPeriod = p.Sprintf("billed yearly")
	default:
		doc.Display.BillingPeriod = p.Sprintf("billed monthly")
	}
	return doc, nil
}

// Filename is the suggested name of the rendered PDF
func (d *Document) Filename() string {
	return printer(d.Language).Sprintf("Quote") + "-" + d.Reference + ".pdf"
}

// WriteJSON encodes the document for the renderer
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func tag(lang types.Language) language.Tag {
	if lang == types.LanguageEnglish {
		return language.English
	}
	return language.German
}

func printer(lang types.Language) *message.Printer {
	return message.NewPrinter(tag(lang))
}

func labels(lang types.Language) Labels {
	p := printer(lang)
	return Labels{
		Title:     p.Sprintf("Quote"),
		Service:   p.Sprintf("Service"),
		Quantity:  p.Sprintf("Quantity"),
		UnitPrice: p.Sprintf("Unit price"),
		LineTotal: p.Sprintf("Line total"),
		Subtotal:  p.Sprintf("Subtotal"),
		Discount:  p.Sprintf("Yearly billing discount"),
		Total:     p.Sprintf("Total"),
	}
}
