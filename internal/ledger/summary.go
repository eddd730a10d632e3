package ledger

// Summary aggregates revenue and profit over a sequence of sales. The
// caller computes it twice per view: once for the whole ledger (the
// global summary) and once for the filtered subset.
type Summary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
}

// Summarize folds per-sale totals into a Summary. An empty input yields
// the zero Summary.
func Summarize(sales []Sale) Summary {
	var sum Summary
	for _, s := range sales {
		t := SaleTotals(s)
		sum.TotalRevenue += t.Taxed
		sum.TotalProfit += t.Profit
	}
	return sum
}
