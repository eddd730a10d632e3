package ledger

import (
	"time"
)

// PaymentType is how the customer settled (or intends to settle) a sale.
type PaymentType string

const (
	PaymentCash     PaymentType = "cash"
	PaymentTransfer PaymentType = "transfer"
	PaymentOther    PaymentType = "other"
)

// Valid reports whether p is one of the known payment types.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// SaleStatus tracks a sale through its lifecycle.
type SaleStatus string

const (
	StatusInProgress SaleStatus = "in_progress"
	StatusCompleted  SaleStatus = "completed"
	StatusCancelled  SaleStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s SaleStatus) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LineItem is one product entry within a sale, as persisted by the data
// service. ProductName is denormalised onto fetched sales for display and
// product filtering; it is never sent back on writes.
type LineItem struct {
	ID                int64   `json:"id,omitempty"`
	ProductID         int64   `json:"product_id"`
	ProductName       string  `json:"product_name,omitempty"`
	Size              *string `json:"size,omitempty"`
	SizeType          *string `json:"size_type,omitempty"`
	Color             *string `json:"color,omitempty"`
	Category          *string `json:"category,omitempty"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	PurchasedQuantity int     `json:"purchased_quantity"`
	UnitCost          float64 `json:"unit_cost"`
}

// Sale is one recorded transaction. ID stays zero until the data service
// assigns one; after a successful create the service's return value
// supersedes the local draft entirely.
type Sale struct {
	ID                  int64        `json:"id"`
	Date                time.Time    `json:"date"`
	BranchID            int64        `json:"branch_id"`
	BranchName          string       `json:"branch_name,omitempty"`
	Salesperson         string       `json:"salesperson"`
	Customer            string       `json:"customer"`
	Description         *string      `json:"description,omitempty"`
	PaymentType         *PaymentType `json:"payment_type,omitempty"`
	Status              SaleStatus   `json:"status"`
	PaidAmount          float64      `json:"paid_amount"`
	PaymentCompleteDate *time.Time   `json:"payment_complete_date,omitempty"`
	RequiresInvoicing   bool         `json:"requires_invoicing"`
	LineItems           []LineItem   `json:"line_items"`
}

// CreateSaleRequest is the payload handed to the data service's
// create-sale operation. All numeric fields are fully parsed; nothing
// string-typed survives from the draft.
type CreateSaleRequest struct {
	BranchID            int64            `json:"branch_id" validate:"required,gt=0"`
	NewSalespersonName  string           `json:"new_salesperson_name" validate:"required"`
	NewCustomerName     string           `json:"new_customer_name" validate:"required"`
	Description         *string          `json:"description,omitempty"`
	PaymentType         *PaymentType     `json:"payment_type,omitempty"`
	PaidAmount          float64          `json:"paid_amount" validate:"gte=0"`
	Status              SaleStatus       `json:"status" validate:"required"`
	PaymentCompleteDate *time.Time       `json:"payment_complete_date,omitempty"`
	RequiresInvoicing   bool             `json:"requires_invoicing"`
	LineItems           []CreateLineItem `json:"line_items" validate:"required,min=1,dive"`
}

// CreateLineItem is the line-item shape inside CreateSaleRequest.
type CreateLineItem struct {
	ProductID         int64   `json:"product_id" validate:"required,gt=0"`
	Size              *string `json:"size,omitempty"`
	SizeType          *string `json:"size_type,omitempty"`
	Color             *string `json:"color,omitempty"`
	Category          *string `json:"category,omitempty"`
	Quantity          int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice         float64 `json:"unit_price" validate:"required,gt=0"`
	PurchasedQuantity int     `json:"purchased_quantity" validate:"gte=0"`
	UnitCost          float64 `json:"unit_cost" validate:"gte=0"`
}
