package ledger

// InvoicingTaxRate is the surcharge applied to a sale's base total when
// the sale requires invoicing. Historical sales are always recomputed at
// this rate; the rate in force when they were registered is not recorded.
const InvoicingTaxRate = 0.08

// Totals holds the derived money amounts for one sale.
type Totals struct {
	Base   float64 `json:"base"`
	Taxed  float64 `json:"taxed"`
	Cost   float64 `json:"cost"`
	Profit float64 `json:"profit"`
}

// CalculateTotals computes a sale's totals from its line items and
// invoicing flag. It is pure: the same input always yields the same
// Totals, and nothing is cached between calls.
func CalculateTotals(items []LineItem, requiresInvoicing bool) Totals {
	var t Totals
	for _, item := range items {
		t.Base += float64(item.Quantity) * item.UnitPrice
		t.Cost += float64(item.PurchasedQuantity) * item.UnitCost
	}
	t.Taxed = t.Base
	if requiresInvoicing {
		t.Taxed = t.Base * (1 + InvoicingTaxRate)
	}
	t.Profit = t.Taxed - t.Cost
	return t
}

// SaleTotals is a convenience wrapper over CalculateTotals.
func SaleTotals(s Sale) Totals {
	return CalculateTotals(s.LineItems, s.RequiresInvoicing)
}
