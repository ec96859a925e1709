package quote

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGenerateTwoLineItems(t *testing.T) {
	q, err := Generate(catalog.Default(), []Selection{
		{ServiceID: "ayce-remote", Quantity: 10},
		{ServiceID: "microsoft-365-business-standard", Quantity: 10},
	}, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []LineItem{
		{ServiceID: "ayce-remote", Name: "All-You-Can-Eat Remote Support", UnitPrice: d("60"), Quantity: 10, LineTotal: d("600"), BillingUnit: catalog.PerUserMonth},
		{ServiceID: "microsoft-365-business-standard", Name: "Microsoft 365 Business Standard", UnitPrice: d("12.50"), Quantity: 10, LineTotal: d("125"), BillingUnit: catalog.PerUserMonth},
	}
	if diff := cmp.Diff(want, q.LineItems, decimalEqual); diff != "" {
		t.Errorf("line items (-want +got):\n%s", diff)
	}
	if !q.Subtotal.Equal(d("725")) {
		t.Errorf("subtotal = %s, want 725", q.Subtotal)
	}
	if !q.Discount.IsZero() || !q.Total.Equal(d("725")) {
		t.Errorf("monthly quote: discount %s, total %s", q.Discount, q.Total)
	}
	if q.Currency != types.CurrencyEUR || q.CatalogVersion != catalog.DefaultVersion {
		t.Errorf("quote metadata = %s / %s", q.Currency, q.CatalogVersion)
	}
}

func TestGenerateYearlyDiscount(t *testing.T) {
	q, err := Generate(catalog.Default(), []Selection{
		{ServiceID: "ayce-remote", Quantity: 10},
		{ServiceID: "microsoft-365-business-standard", Quantity: 10},
	}, true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !q.Discount.Equal(d("72.50")) {
		t.Errorf("discount = %s, want 72.50", q.Discount)
	}
	if !q.Total.Equal(d("652.50")) {
		t.Errorf("total = %s, want 652.50", q.Total)
	}
	if !q.IsYearly || q.Period() != types.BillingYearly {
		t.Errorf("period = %s, want yearly", q.Period())
	}
}

func TestPeriodFollowsBilling(t *testing.T) {
	sel := []Selection{{ServiceID: "ayce-remote", Quantity: 1}}
	for _, yearly := range []bool{false, true} {
		q, err := Generate(catalog.Default(), sel, yearly)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if q.Period().IsYearly() != yearly {
			t.Errorf("yearly=%t: period = %s", yearly, q.Period())
		}
	}
}

func TestGenerateUnknownService(t *testing.T) {
	q, err := Generate(catalog.Default(), []Selection{{ServiceID: "does-not-exist", Quantity: 1}}, false)
	if !stderrors.Is(err, errors.ErrUnknownService) {
		t.Fatalf("err = %v, want UNKNOWN_SERVICE", err)
	}
	if q != nil {
		t.Errorf("no quote may be returned with an unpriced line, got %+v", q)
	}
	if !strings.Contains(err.Error(), "does-not-exist") {
		t.Errorf("error should name the service: %v", err)
	}
}

func TestGenerateUnknownServiceAmongValidOnes(t *testing.T) {
	_, err := Generate(catalog.Default(), []Selection{
		{ServiceID: "ayce-remote", Quantity: 3},
		{ServiceID: "typo-service", Quantity: 3},
	}, false)
	if !stderrors.Is(err, errors.ErrUnknownService) {
		t.Fatalf("err = %v, want UNKNOWN_SERVICE", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should point at line 2: %v", err)
	}
}

func TestGenerateInvalidQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -100} {
		_, err := Generate(catalog.Default(), []Selection{{ServiceID: "ayce-remote", Quantity: qty}}, false)
		if !stderrors.Is(err, errors.ErrInvalidQuantity) {
			t.Errorf("quantity %d: err = %v, want INVALID_QUANTITY", qty, err)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	if _, err := Generate(catalog.Default(), nil, false); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestGenerateKeepsSelectionOrder(t *testing.T) {
	ids := []string{"onboarding", "m365-backup", "ayce-onsite", "endpoint-security", "support-hour"}
	var sel []Selection
	for i, id := range ids {
		sel = append(sel, Selection{ServiceID: id, Quantity: i + 1})
	}

	q, err := Generate(catalog.Default(), sel, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, li := range q.LineItems {
		if li.ServiceID != ids[i] || li.Quantity != i+1 {
			t.Errorf("line %d = %s x%d, want %s x%d", i, li.ServiceID, li.Quantity, ids[i], i+1)
		}
	}
}

func TestQuoteAdditivity(t *testing.T) {
	cat := catalog.Default()
	selections := [][]Selection{
		{{ServiceID: "microsoft-365-business-basic", Quantity: 7}},
		{{ServiceID: "m365-backup", Quantity: 13}, {ServiceID: "microsoft-365-business-premium", Quantity: 3}},
		{{ServiceID: "ayce-hybrid", Quantity: 33}, {ServiceID: "endpoint-security", Quantity: 41}, {ServiceID: "onboarding", Quantity: 1}},
	}

	for _, sel := range selections {
		for _, yearly := range []bool{false, true} {
			q, err := Generate(cat, sel, yearly)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			sum := decimal.Zero
			for _, li := range q.LineItems {
				sum = sum.Add(li.LineTotal)
			}
			if !q.Subtotal.Equal(sum) {
				t.Errorf("subtotal %s != sum of lines %s", q.Subtotal, sum)
			}
			if !q.Total.Equal(q.Subtotal.Sub(q.Discount)) {
				t.Errorf("total %s != subtotal %s - discount %s", q.Total, q.Subtotal, q.Discount)
			}
			if q.Discount.Exponent() < -2 || q.Total.Exponent() < -2 {
				t.Errorf("amounts carry sub-cent precision: discount %s, total %s", q.Discount, q.Total)
			}
		}
	}
}

func TestRecurringExcludesOneTime(t *testing.T) {
	q, err := Generate(catalog.Default(), []Selection{
		{ServiceID: "ayce-remote", Quantity: 5},
		{ServiceID: "onboarding", Quantity: 1},
	}, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !q.Recurring().Equal(d("300")) {
		t.Errorf("recurring = %s, want 300", q.Recurring())
	}
	if !strings.Contains(q.String(), "790.00 EUR") {
		t.Errorf("String() = %s", q.String())
	}
}

func TestFromPlan(t *testing.T) {
	cat := catalog.Default()

	sel, err := FromPlan(cat, Plan{SupportType: types.SupportRemote, Users: 10, AddOns: []string{"microsoft-365-business-standard"}})
	if err != nil {
		t.Fatalf("FromPlan: %v", err)
	}
	want := []Selection{
		{ServiceID: "ayce-remote", Quantity: 10},
		{ServiceID: "microsoft-365-business-standard", Quantity: 10},
	}
	if diff := cmp.Diff(want, sel); diff != "" {
		t.Errorf("selections (-want +got):\n%s", diff)
	}

	q, err := Generate(cat, sel, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !q.Subtotal.Equal(d("725")) {
		t.Errorf("subtotal = %s, want 725", q.Subtotal)
	}
}

func TestFromPlanErrors(t *testing.T) {
	cat := catalog.Default()
	cases := []struct {
		name string
		plan Plan
		want error
	}{
		{"no users", Plan{SupportType: types.SupportRemote}, errors.ErrInvalidInput},
		{"unknown support", Plan{SupportType: "satellite", Users: 3}, errors.ErrUnknownKey},
		{"duplicate add-on", Plan{SupportType: types.SupportRemote, Users: 3, AddOns: []string{"m365-backup", "m365-backup"}}, errors.ErrInvalidInput},
		{"support tier as add-on", Plan{SupportType: types.SupportRemote, Users: 3, AddOns: []string{"ayce-remote"}}, errors.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromPlan(cat, tc.plan); !stderrors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReference(t *testing.T) {
	cat := catalog.Default()
	sel := []Selection{{ServiceID: "ayce-remote", Quantity: 10}}

	monthly, _ := Generate(cat, sel, false)
	again, _ := Generate(cat, sel, false)
	yearly, _ := Generate(cat, sel, true)

	ref := Reference(monthly)
	if !strings.HasPrefix(ref, "Q-") || len(ref) != 12 {
		t.Errorf("reference %q has the wrong shape", ref)
	}
	if Reference(again) != ref {
		t.Errorf("same quote produced %s and %s", ref, Reference(again))
	}
	if Reference(yearly) == ref {
		t.Errorf("billing period must change the reference")
	}
}
