package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// Criteria is a set of independent, optional filter predicates over the
// ledger. The zero value matches every sale. String fields are matched
// case-insensitively: salesperson, customer, status and product name by
// substring, payment type by equality. Month is the 0-based calendar
// month so that January stays filterable; pointers distinguish "unset"
// from legitimate zero values.
type Criteria struct {
	Salesperson string  `json:"salesperson,omitempty"`
	Customer    string  `json:"customer,omitempty"`
	PaymentType string  `json:"payment_type,omitempty"`
	Status      string  `json:"status,omitempty"`
	Invoicing   *bool   `json:"invoicing,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Month       *int    `json:"month,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

// IsZero reports whether no predicate is populated.
func (c Criteria) IsZero() bool {
	return c.Salesperson == "" && c.Customer == "" && c.PaymentType == "" &&
		c.Status == "" && c.Invoicing == nil && c.ProductName == "" &&
		c.Month == nil && c.Year == nil
}

// Matches reports whether the sale satisfies every populated predicate.
// Unset predicates are vacuously true.
func (c Criteria) Matches(s Sale) bool {
	if c.Salesperson != "" && !foldContains(s.Salesperson, c.Salesperson) {
		return false
	}
	if c.Customer != "" && !foldContains(s.Customer, c.Customer) {
		return false
	}
	if c.PaymentType != "" {
		if s.PaymentType == nil || !foldEqual(string(*s.PaymentType), c.PaymentType) {
			return false
		}
	}
	if c.Status != "" && !foldContains(string(s.Status), c.Status) {
		return false
	}
	if c.Invoicing != nil && s.RequiresInvoicing != *c.Invoicing {
		return false
	}
	if c.ProductName != "" {
		matched := false
		for _, item := range s.LineItems {
			if foldContains(item.ProductName, c.ProductName) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if c.Month != nil && int(s.Date.Month())-1 != *c.Month {
		return false
	}
	if c.Year != nil && s.Date.Year() != *c.Year {
		return false
	}
	return true
}

// FilterSales returns the sales matching c, preserving input order.
func FilterSales(sales []Sale, c Criteria) []Sale {
	matched := make([]Sale, 0, len(sales))
	for _, s := range sales {
		if c.Matches(s) {
			matched = append(matched, s)
		}
	}
	return matched
}

// fold applies full Unicode case folding. cases.Caser is stateful, so a
// fresh one is taken per call rather than shared.
func fold(s string) string {
	return cases.Fold().String(s)
}

func foldContains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}

func foldEqual(a, b string) bool {
	return fold(a) == fold(b)
}
