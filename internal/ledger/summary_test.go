package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, Summarize([]Sale{}))
}

func TestSummarizeMixedInvoicing(t *testing.T) {
	sales := []Sale{
		{
			RequiresInvoicing: true,
			LineItems:         []LineItem{{Quantity: 1, UnitPrice: 100, PurchasedQuantity: 1, UnitCost: 40}},
		},
		{
			LineItems: []LineItem{{Quantity: 2, UnitPrice: 25}},
		},
	}

	sum := Summarize(sales)

	// 100*1.08 + 50
	assert.InDelta(t, 158.0, sum.TotalRevenue, 1e-9)
	// (108-40) + 50
	assert.InDelta(t, 118.0, sum.TotalProfit, 1e-9)
}

func TestSummarizeMatchesPerSaleTotals(t *testing.T) {
	sales := sampleSales()
	var revenue, profit float64
	for _, s := range sales {
		totals := SaleTotals(s)
		revenue += totals.Taxed
		profit += totals.Profit
	}

	sum := Summarize(sales)
	assert.InDelta(t, revenue, sum.TotalRevenue, 1e-9)
	assert.InDelta(t, profit, sum.TotalProfit, 1e-9)
}
