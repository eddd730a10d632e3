// Package refdata serves the shop's reference catalogs: the lookup
// lists a sale registration form is populated from.
package refdata

import "errors"

// Kind identifies one reference catalog on the data service.
type Kind string

const (
	KindBranches          Kind = "branches"
	KindSalespeople       Kind = "salespeople"
	KindCustomers         Kind = "customers"
	KindProducts          Kind = "products"
	KindColors            Kind = "colors"
	KindSizeTypes         Kind = "size-types"
	KindProductCategories Kind = "product-categories"
)

// Kinds lists every catalog, in the order the registration form loads them.
func Kinds() []Kind {
	return []Kind{
		KindBranches,
		KindSalespeople,
		KindCustomers,
		KindProducts,
		KindColors,
		KindSizeTypes,
		KindProductCategories,
	}
}

// Valid reports whether the kind names a known catalog.
func (k Kind) Valid() bool {
	switch k {
	case KindBranches, KindSalespeople, KindCustomers, KindProducts,
		KindColors, KindSizeTypes, KindProductCategories:
		return true
	}
	return false
}

// Entry is one row of a reference catalog.
type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog bundles every reference list needed to render the sale form.
type Catalog struct {
	Branches          []Entry `json:"branches"`
	Salespeople       []Entry `json:"salespeople"`
	Customers         []Entry `json:"customers"`
	Products          []Entry `json:"products"`
	Colors            []Entry `json:"colors"`
	SizeTypes         []Entry `json:"size_types"`
	ProductCategories []Entry `json:"product_categories"`
}

var (
	// ErrUnknownKind is returned when a request names a catalog that does not exist.
	ErrUnknownKind = errors.New("refdata: unknown catalog kind")
	// ErrEmptyName is returned when a new entry has a blank name.
	ErrEmptyName = errors.New("refdata: entry name required")
)
