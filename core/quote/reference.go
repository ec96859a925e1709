package quote

import (
	"strconv"

	"msp-pricing/core/determinism"
)

var references = determinism.NewIDGenerator("msp-pricing/quote")

// Reference derives a stable quote number from the quote's content.
// Regenerating the same selections against the same catalog yields the same reference.
func Reference(q *Quote) string {
	parts := []string{q.CatalogVersion, strconv.FormatBool(q.IsYearly)}
	for _, li := range q.LineItems {
		parts = append(parts, li.ServiceID, strconv.Itoa(li.Quantity), li.UnitPrice.String())
	}
	return "Q-" + string(references.Generate(parts...))[:10]
}
