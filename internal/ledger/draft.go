package ledger

import (
	"strconv"
	"strings"
	"time"
)

// RowToken identifies a draft line row for list rendering. Tokens come
// from a counter scoped to the owning collection, so they are unique for
// the collection's lifetime and reproducible in tests. They are never
// persisted.
type RowToken uint64

// LineField names one editable field of a draft line row.
type LineField string

const (
	FieldProduct           LineField = "product_id"
	FieldSize              LineField = "size"
	FieldSizeType          LineField = "size_type"
	FieldColor             LineField = "color"
	FieldCategory          LineField = "category"
	FieldQuantity          LineField = "quantity"
	FieldUnitPrice         LineField = "unit_price"
	FieldPurchasedQuantity LineField = "purchased_quantity"
	FieldUnitCost          LineField = "unit_cost"
)

// LineRow is one line item under edit. Numeric fields stay raw text so
// that partially typed input ("10.", "") is representable; coercion
// happens at validation and payload time, never per keystroke.
type LineRow struct {
	Token             RowToken
	ProductID         string
	Size              string
	SizeType          string
	Color             string
	Category          string
	Quantity          string
	UnitPrice         string
	PurchasedQuantity string
	UnitCost          string
}

// LineRows is the ordered collection of line rows belonging to one sale
// draft. It is not safe for concurrent mutation; one edit session owns a
// draft at a time.
type LineRows struct {
	rows []LineRow
	next RowToken
}

// NewLineRows returns an empty collection.
func NewLineRows() *LineRows {
	return &LineRows{}
}

// Add appends a blank row with quantity preset to 1 and returns its
// token.
func (l *LineRows) Add() RowToken {
	l.next++
	l.rows = append(l.rows, LineRow{Token: l.next, Quantity: "1"})
	return l.next
}

// Len returns the number of rows.
func (l *LineRows) Len() int { return len(l.rows) }

// Rows returns a copy of the rows in order.
func (l *LineRows) Rows() []LineRow {
	out := make([]LineRow, len(l.rows))
	copy(out, l.rows)
	return out
}

// Row returns the row at index i.
func (l *LineRows) Row(i int) (LineRow, error) {
	if i < 0 || i >= len(l.rows) {
		return LineRow{}, ErrRowOutOfRange
	}
	return l.rows[i], nil
}

// Update replaces one field of the row at index i with raw text.
func (l *LineRows) Update(i int, field LineField, value string) error {
	if i < 0 || i >= len(l.rows) {
		return ErrRowOutOfRange
	}
	row := &l.rows[i]
	switch field {
	case FieldProduct:
		row.ProductID = value
	case FieldSize:
		row.Size = value
	case FieldSizeType:
		row.SizeType = value
	case FieldColor:
		row.Color = value
	case FieldCategory:
		row.Category = value
	case FieldQuantity:
		row.Quantity = value
	case FieldUnitPrice:
		row.UnitPrice = value
	case FieldPurchasedQuantity:
		row.PurchasedQuantity = value
	case FieldUnitCost:
		row.UnitCost = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Remove deletes the row at index i.
func (l *LineRows) Remove(i int) error {
	if i < 0 || i >= len(l.rows) {
		return ErrRowOutOfRange
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	return nil
}

// Validate checks every row in order and returns at most one error per
// offending row, rules checked as: product, quantity, unit price,
// purchased quantity, unit cost. Rows are numbered from 1.
func (l *LineRows) Validate() []*ValidationError {
	var errs []*ValidationError
	for i, row := range l.rows {
		if err := validateRow(i+1, row); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateRow(rowNum int, row LineRow) *ValidationError {
	if id, err := parseID(row.ProductID); err != nil || id <= 0 {
		return &ValidationError{Row: rowNum, Field: string(FieldProduct), Message: "select a product"}
	}
	if qty, err := parseInt(row.Quantity); err != nil || qty <= 0 {
		return &ValidationError{Row: rowNum, Field: string(FieldQuantity), Message: "quantity must be a positive whole number"}
	}
	if price, err := parseFloat(row.UnitPrice); err != nil || price <= 0 {
		return &ValidationError{Row: rowNum, Field: string(FieldUnitPrice), Message: "unit price must be greater than zero"}
	}
	if row.PurchasedQuantity != "" {
		if qty, err := parseInt(row.PurchasedQuantity); err != nil || qty < 0 {
			return &ValidationError{Row: rowNum, Field: string(FieldPurchasedQuantity), Message: "purchased quantity must be zero or greater"}
		}
	}
	if row.UnitCost != "" {
		if cost, err := parseFloat(row.UnitCost); err != nil || cost < 0 {
			return &ValidationError{Row: rowNum, Field: string(FieldUnitCost), Message: "unit cost must be zero or greater"}
		}
	}
	return nil
}

// SaleDraft is a sale under construction or edit. Scalar fields mirror
// the registration form: selects and text boxes deliver strings, parsed
// only when the draft is validated and converted.
type SaleDraft struct {
	BranchID            string
	Salesperson         string
	Customer            string
	Description         string
	PaymentType         string
	PaidAmount          string
	Status              SaleStatus
	PaymentCompleteDate string
	RequiresInvoicing   bool
	Lines               *LineRows
}

// NewSaleDraft returns an empty draft in the in-progress state.
func NewSaleDraft() *SaleDraft {
	return &SaleDraft{
		Status: StatusInProgress,
		Lines:  NewLineRows(),
	}
}

// DraftOf reconstructs an editable draft from a persisted sale, for the
// edit flow. Every numeric value is rendered back to text.
func DraftOf(s Sale) *SaleDraft {
	d := NewSaleDraft()
	d.BranchID = strconv.FormatInt(s.BranchID, 10)
	d.Salesperson = s.Salesperson
	d.Customer = s.Customer
	if s.Description != nil {
		d.Description = *s.Description
	}
	if s.PaymentType != nil {
		d.PaymentType = string(*s.PaymentType)
	}
	d.PaidAmount = strconv.FormatFloat(s.PaidAmount, 'f', -1, 64)
	if s.Status != "" {
		d.Status = s.Status
	}
	if s.PaymentCompleteDate != nil {
		d.PaymentCompleteDate = s.PaymentCompleteDate.Format("2006-01-02")
	}
	d.RequiresInvoicing = s.RequiresInvoicing
	for _, item := range s.LineItems {
		i := d.Lines.Len()
		d.Lines.Add()
		_ = d.Lines.Update(i, FieldProduct, strconv.FormatInt(item.ProductID, 10))
		_ = d.Lines.Update(i, FieldSize, deref(item.Size))
		_ = d.Lines.Update(i, FieldSizeType, deref(item.SizeType))
		_ = d.Lines.Update(i, FieldColor, deref(item.Color))
		_ = d.Lines.Update(i, FieldCategory, deref(item.Category))
		_ = d.Lines.Update(i, FieldQuantity, strconv.Itoa(item.Quantity))
		_ = d.Lines.Update(i, FieldUnitPrice, strconv.FormatFloat(item.UnitPrice, 'f', -1, 64))
		_ = d.Lines.Update(i, FieldPurchasedQuantity, strconv.Itoa(item.PurchasedQuantity))
		_ = d.Lines.Update(i, FieldUnitCost, strconv.FormatFloat(item.UnitCost, 'f', -1, 64))
	}
	return d
}

// Validate returns every violated rule: sale-level checks first (branch,
// salesperson, customer, payment fields, non-empty rows), then the
// per-row checks in row order.
func (d *SaleDraft) Validate() []*ValidationError {
	var errs []*ValidationError
	if id, err := parseID(d.BranchID); err != nil || id <= 0 {
		errs = append(errs, &ValidationError{Field: "branch_id", Message: "select a branch"})
	}
	if strings.TrimSpace(d.Salesperson) == "" {
		errs = append(errs, &ValidationError{Field: "salesperson", Message: "salesperson is required"})
	}
	if strings.TrimSpace(d.Customer) == "" {
		errs = append(errs, &ValidationError{Field: "customer", Message: "customer is required"})
	}
	if d.PaymentType != "" && !PaymentType(d.PaymentType).Valid() {
		errs = append(errs, &ValidationError{Field: "payment_type", Message: "invalid payment type"})
	}
	if d.PaidAmount != "" {
		if amount, err := parseFloat(d.PaidAmount); err != nil || amount < 0 {
			errs = append(errs, &ValidationError{Field: "paid_amount", Message: "paid amount must be zero or greater"})
		}
	}
	if d.Status != "" && !d.Status.Valid() {
		errs = append(errs, &ValidationError{Field: "status", Message: "invalid status"})
	}
	if d.Status == StatusCompleted && d.PaymentCompleteDate != "" {
		if _, err := time.Parse("2006-01-02", d.PaymentCompleteDate); err != nil {
			errs = append(errs, &ValidationError{Field: "payment_complete_date", Message: "payment complete date must be YYYY-MM-DD"})
		}
	}
	if d.Lines == nil || d.Lines.Len() == 0 {
		errs = append(errs, &ValidationError{Field: "line_items", Message: "add at least one line item"})
		return errs
	}
	return append(errs, d.Lines.Validate()...)
}

// Check is the submission gate: it returns the first validation error,
// or nil when the draft may be submitted.
func (d *SaleDraft) Check() error {
	if errs := d.Validate(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// CreatePayload validates the draft and converts it into the create
// payload for the data service. The payment complete date is dropped
// unless the sale is completed.
func (d *SaleDraft) CreatePayload() (*CreateSaleRequest, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}

	branchID, _ := parseID(d.BranchID)
	status := d.Status
	if status == "" {
		status = StatusInProgress
	}

	req := &CreateSaleRequest{
		BranchID:           branchID,
		NewSalespersonName: strings.TrimSpace(d.Salesperson),
		NewCustomerName:    strings.TrimSpace(d.Customer),
		Description:        optional(strings.TrimSpace(d.Description)),
		PaidAmount:         lenientFloat(d.PaidAmount),
		Status:             status,
		RequiresInvoicing:  d.RequiresInvoicing,
	}
	if d.PaymentType != "" {
		pt := PaymentType(d.PaymentType)
		req.PaymentType = &pt
	}
	if status == StatusCompleted && d.PaymentCompleteDate != "" {
		if t, err := time.Parse("2006-01-02", d.PaymentCompleteDate); err == nil {
			req.PaymentCompleteDate = &t
		}
	}

	for _, row := range d.Lines.Rows() {
		productID, _ := parseID(row.ProductID)
		quantity, _ := parseInt(row.Quantity)
		unitPrice, _ := parseFloat(row.UnitPrice)
		req.LineItems = append(req.LineItems, CreateLineItem{
			ProductID:         productID,
			Size:              optional(row.Size),
			SizeType:          optional(row.SizeType),
			Color:             optional(row.Color),
			Category:          optional(row.Category),
			Quantity:          quantity,
			UnitPrice:         unitPrice,
			PurchasedQuantity: lenientInt(row.PurchasedQuantity),
			UnitCost:          lenientFloat(row.UnitCost),
		})
	}
	return req, nil
}

// UpdatedSale validates the draft and produces the full mutated sale
// record for the update-by-id operation, keeping base's identity and
// date.
func (d *SaleDraft) UpdatedSale(base Sale) (*Sale, error) {
	payload, err := d.CreatePayload()
	if err != nil {
		return nil, err
	}

	sale := Sale{
		ID:                  base.ID,
		Date:                base.Date,
		BranchID:            payload.BranchID,
		Salesperson:         payload.NewSalespersonName,
		Customer:            payload.NewCustomerName,
		Description:         payload.Description,
		PaymentType:         payload.PaymentType,
		Status:              payload.Status,
		PaidAmount:          payload.PaidAmount,
		PaymentCompleteDate: payload.PaymentCompleteDate,
		RequiresInvoicing:   payload.RequiresInvoicing,
	}
	for _, item := range payload.LineItems {
		sale.LineItems = append(sale.LineItems, LineItem{
			ProductID:         item.ProductID,
			Size:              item.Size,
			SizeType:          item.SizeType,
			Color:             item.Color,
			Category:          item.Category,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			PurchasedQuantity: item.PurchasedQuantity,
			UnitCost:          item.UnitCost,
		})
	}
	return &sale, nil
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// lenientInt and lenientFloat coerce optional fields that have already
// passed validation; blank means the documented default of zero.
func lenientInt(s string) int {
	v, err := parseInt(s)
	if err != nil {
		return 0
	}
	return v
}

func lenientFloat(s string) float64 {
	v, err := parseFloat(s)
	if err != nil {
		return 0
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
