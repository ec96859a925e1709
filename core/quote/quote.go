// Package quote turns service selections into a priced, itemised quote.
// Quotes are built on demand and never stored; the export package hands
// them to the PDF renderer.
package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"msp-pricing/core/catalog"
	"msp-pricing/core/types"
	"msp-pricing/internal/errors"
)

// Selection is one requested service and how many units of it
type Selection struct {
	ServiceID string `json:"serviceId"`
	Quantity  int    `json:"quantity"`
}

// LineItem is a priced Selection
type LineItem struct {
	ServiceID   string              `json:"serviceId"`
	Name        string              `json:"name"`
	UnitPrice   decimal.Decimal     `json:"unitPrice"`
	Quantity    int                 `json:"quantity"`
	LineTotal   decimal.Decimal     `json:"lineTotal"`
	BillingUnit catalog.BillingUnit `json:"billingUnit"`
}

// Quote is an itemised price for a set of selections.
// Subtotal is the sum of the line totals and Total is Subtotal minus Discount, exactly.
type Quote struct {
	LineItems      []LineItem      `json:"lineItems"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	IsYearly       bool            `json:"isYearly"`
	Currency       types.Currency  `json:"currency"`
	CatalogVersion string          `json:"catalogVersion"`
}

// Generate prices services against cat. Line items keep the order of services.
// When yearly is set the catalog's yearly-billing discount is taken off the subtotal.
// Any unknown service or non-positive quantity fails the whole quote.
func Generate(cat *catalog.Catalog, services []Selection, yearly bool) (*Quote, error) {
	if len(services) == 0 {
		return nil, errors.InvalidInput("a quote needs at least one service")
	}

	q := &Quote{
		LineItems:      make([]LineItem, 0, len(services)),
		Subtotal:       decimal.Zero,
		Discount:       decimal.Zero,
		IsYearly:       yearly,
		Currency:       cat.Currency(),
		CatalogVersion: cat.Version(),
	}

	for i, sel := range services {
		svc, err := cat.Service(sel.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if sel.Quantity <= 0 {
			return nil, errors.InvalidQuantity(sel.ServiceID, sel.Quantity).WithContext("line", i+1)
		}

		lineTotal := types.RoundCents(svc.UnitPrice.Mul(decimal.NewFromInt(int64(sel.Quantity))))
		q.LineItems = append(q.LineItems, LineItem{
			ServiceID:   svc.ID,
			Name:        svc.Name,
			UnitPrice:   svc.UnitPrice,
			Quantity:    sel.Quantity,
			LineTotal:   lineTotal,
			BillingUnit: svc.BillingUnit,
		})
		q.Subtotal = q.Subtotal.Add(lineTotal)
	}

	if yearly {
		q.Discount = types.RoundCents(q.Subtotal.Mul(cat.YearlyBillingDiscount()))
	}
	q.Total = q.Subtotal.Sub(q.Discount)
	return q, nil
}

// Plan describes a quote the way the calculator UI builds it:
// a support tier for every user plus optional per-user add-ons.
type Plan struct {
	SupportType types.SupportType `json:"supportType"`
	Users       int               `json:"users"`
	AddOns      []string          `json:"addOns,omitempty"`
}

// FromPlan expands a plan into selections, support tier first
func FromPlan(cat *catalog.Catalog, plan Plan) ([]Selection, error) {
	if plan.Users < 1 {
		return nil, errors.InvalidInput("users must be at least 1, got %d", plan.Users).
			WithContext("users", plan.Users)
	}
	if _, err := cat.MSPPlan(plan.SupportType); err != nil {
		return nil, err
	}

	selections := []Selection{{ServiceID: catalog.SupportServiceID(plan.SupportType), Quantity: plan.Users}}
	seen := map[string]bool{selections[0].ServiceID: true}
	for _, id := range plan.AddOns {
		if seen[id] {
			return nil, errors.InvalidInput("add-on %q selected twice", id)
		}
		seen[id] = true
		selections = append(selections, Selection{ServiceID: id, Quantity: plan.Users})
	}
	return selections, nil
}

// Period is the billing cadence the quote was priced for
func (q *Quote) Period() types.BillingPeriod {
	if q.IsYearly {
		return types.BillingYearly
	}
	return types.BillingMonthly
}

// Recurring returns the subtotal without one-time items
func (q *Quote) Recurring() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range q.LineItems {
		if li.BillingUnit == catalog.OneTime {
			continue
		}
		sum = sum.Add(li.LineTotal)
	}
	return sum
}

// String summarises the quote for logs
func (q *Quote) String() string {
	return fmt.Sprintf("quote(%d lines, total %s %s)", len(q.LineItems), q.Total.StringFixed(2), q.Currency)
}
