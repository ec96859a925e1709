package export

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"msp-pricing/core/catalog"
	"msp-pricing/core/quote"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

func TestMain(m *testing.M) {
	types.UseNumericMoneyJSON()
	os.Exit(m.Run())
}

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	prev := Clock
	Clock = func() time.Time { return at }
	t.Cleanup(func() { Clock = prev })
	return at
}

func sampleQuote(t *testing.T, yearly bool) *quote.Quote {
	t.Helper()
	q, err := quote.Generate(catalog.Default(), []quote.Selection{
		{ServiceID: "ayce-remote", Quantity: 10},
		{ServiceID: "microsoft-365-business-standard", Quantity: 10},
	}, yearly)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return q
}

func TestNewDocumentGerman(t *testing.T) {
	at := fixedClock(t)
	q := sampleQuote(t, true)

	doc, err := NewDocument(q, true, types.LanguageGerman)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	if doc.Reference != quote.Reference(q) || !doc.GeneratedAt.Equal(at) {
		t.Errorf("reference %s generated %s", doc.Reference, doc.GeneratedAt)
	}
	want := Display{
		LineItems: []DisplayLine{
			{ServiceID: "ayce-remote", UnitPrice: "60,00 €", LineTotal: "600,00 €"},
			{ServiceID: "microsoft-365-business-standard", UnitPrice: "12,50 €", LineTotal: "125,00 €"},
		},
		Subtotal:      "725,00 €",
		Discount:      "-72,50 €",
		Total:         "652,50 €",
		BillingPeriod: "jährliche Abrechnung",
	}
	if diff := cmp.Diff(want, doc.Display); diff != "" {
		t.Errorf("display (-want +got):\n%s", diff)
	}
	if doc.Labels.Title != "Angebot" || doc.Labels.Total != "Gesamt" {
		t.Errorf("labels = %+v", doc.Labels)
	}
	if doc.Filename() != "Angebot-"+doc.Reference+".pdf" {
		t.Errorf("filename = %s", doc.Filename())
	}
}

func TestNewDocumentEnglishMonthly(t *testing.T) {
	fixedClock(t)
	doc, err := NewDocument(sampleQuote(t, false), false, types.LanguageEnglish)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if doc.Display.Total != "€725.00" || doc.Display.Discount != "" {
		t.Errorf("display = %+v", doc.Display)
	}
	if doc.Display.BillingPeriod != "billed monthly" || doc.Labels.UnitPrice != "Unit price" {
		t.Errorf("english strings = %q / %q", doc.Display.BillingPeriod, doc.Labels.UnitPrice)
	}
	if !strings.HasPrefix(doc.Filename(), "Quote-Q-") {
		t.Errorf("filename = %s", doc.Filename())
	}
}

func TestNewDocumentRejects(t *testing.T) {
	monthly := sampleQuote(t, false)

	if _, err := NewDocument(nil, false, types.LanguageGerman); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("nil quote err = %v", err)
	}
	if _, err := NewDocument(monthly, true, types.LanguageGerman); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("billing mismatch err = %v", err)
	}
	if _, err := NewDocument(monthly, false, "fr"); !stderrors.Is(err, errors.ErrUnknownKey) {
		t.Errorf("unsupported language err = %v", err)
	}
}

func TestWriteJSONKeepsNumericQuote(t *testing.T) {
	fixedClock(t)
	doc, err := NewDocument(sampleQuote(t, true), true, types.LanguageGerman)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	var buf bytes.Buffer
	if err := doc.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got struct {
		Reference   string `json:"reference"`
		IsYearly    bool   `json:"isYearly"`
		Language    string `json:"language"`
		GeneratedAt string `json:"generatedAt"`
		Quote       struct {
			Subtotal  float64 `json:"subtotal"`
			Discount  float64 `json:"discount"`
			Total     float64 `json:"total"`
			LineItems []struct {
				ServiceID string  `json:"serviceId"`
				Name      string  `json:"name"`
				UnitPrice float64 `json:"unitPrice"`
				Quantity  int     `json:"quantity"`
				LineTotal float64 `json:"lineTotal"`
			} `json:"lineItems"`
		} `json:"quote"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if got.Quote.Subtotal != 725 || got.Quote.Discount != 72.5 || got.Quote.Total != 652.5 {
		t.Errorf("quote amounts = %+v", got.Quote)
	}
	if got.Quote.LineItems[0].UnitPrice != 60 || got.Quote.LineItems[0].Quantity != 10 {
		t.Errorf("first line = %+v", got.Quote.LineItems[0])
	}
	if !got.IsYearly || got.Language != "de" || got.GeneratedAt != "2025-03-01T09:30:00Z" {
		t.Errorf("envelope = %+v", got)
	}
}
