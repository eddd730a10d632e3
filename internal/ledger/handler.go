package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/imprenta-pos/imprenta-pos/internal/platform/httpx"
)

// Handler exposes the ledger over JSON HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the ledger HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Overview renders one page of the filtered ledger plus both summaries.
// A client that changes any filter field is expected to request page 1;
// the handler applies whatever page it is given, clamped by the pager.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	criteria, page, err := parseOverviewQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	view, err := h.service.Overview(r.Context(), criteria, page)
	if err != nil {
		h.logger.Error("ledger overview failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// Refresh discards the cached snapshot and re-warms it.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Refresh(r.Context())
	if err != nil {
		h.logger.Error("ledger refresh failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"sales": count})
}

// Show returns one sale with its line items.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid id", "sale id must be an integer")
		return
	}
	sale, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}

// Create registers a new sale from a draft-shaped request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req saleDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}

	draft := req.draft()
	if errs := draft.Validate(); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}

	sale, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.logger.Error("create sale failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

// Update replaces a persisted sale with the mutated draft.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid id", "sale id must be an integer")
		return
	}

	var req saleDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}

	draft := req.draft()
	if errs := draft.Validate(); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}

	sale, err := h.service.Update(r.Context(), id, draft)
	if err != nil {
		h.logger.Error("update sale failed", slog.Int64("sale_id", id), slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}

// Delete removes a sale by id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid id", "sale id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		httpx.ValidationProblem(w, []*ValidationError{verr})
		return
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		if sc.StatusCode() == http.StatusNotFound {
			httpx.Problem(w, http.StatusNotFound, "Sale not found", "")
			return
		}
		httpx.Problem(w, http.StatusBadGateway, "Sales data service error", err.Error())
		return
	}
	httpx.Problem(w, http.StatusInternalServerError, "Internal error", "")
}

// saleDraftRequest mirrors the registration form: numeric fields arrive
// as raw text and flow through the draft's validation and coercion.
type saleDraftRequest struct {
	BranchID            string             `json:"branch_id"`
	Salesperson         string             `json:"salesperson"`
	Customer            string             `json:"customer"`
	Description         string             `json:"description"`
	PaymentType         string             `json:"payment_type"`
	PaidAmount          string             `json:"paid_amount"`
	Status              string             `json:"status"`
	PaymentCompleteDate string             `json:"payment_complete_date"`
	RequiresInvoicing   bool               `json:"requires_invoicing"`
	LineItems           []lineDraftRequest `json:"line_items"`
}

type lineDraftRequest struct {
	ProductID         string `json:"product_id"`
	Size              string `json:"size"`
	SizeType          string `json:"size_type"`
	Color             string `json:"color"`
	Category          string `json:"category"`
	Quantity          string `json:"quantity"`
	UnitPrice         string `json:"unit_price"`
	PurchasedQuantity string `json:"purchased_quantity"`
	UnitCost          string `json:"unit_cost"`
}

func (req saleDraftRequest) draft() *SaleDraft {
	d := NewSaleDraft()
	d.BranchID = req.BranchID
	d.Salesperson = req.Salesperson
	d.Customer = req.Customer
	d.Description = req.Description
	d.PaymentType = req.PaymentType
	d.PaidAmount = req.PaidAmount
	if req.Status != "" {
		d.Status = SaleStatus(req.Status)
	}
	d.PaymentCompleteDate = req.PaymentCompleteDate
	d.RequiresInvoicing = req.RequiresInvoicing
	for _, line := range req.LineItems {
		i := d.Lines.Len()
		d.Lines.Add()
		_ = d.Lines.Update(i, FieldProduct, line.ProductID)
		_ = d.Lines.Update(i, FieldSize, line.Size)
		_ = d.Lines.Update(i, FieldSizeType, line.SizeType)
		_ = d.Lines.Update(i, FieldColor, line.Color)
		_ = d.Lines.Update(i, FieldCategory, line.Category)
		_ = d.Lines.Update(i, FieldQuantity, line.Quantity)
		_ = d.Lines.Update(i, FieldUnitPrice, line.UnitPrice)
		_ = d.Lines.Update(i, FieldPurchasedQuantity, line.PurchasedQuantity)
		_ = d.Lines.Update(i, FieldUnitCost, line.UnitCost)
	}
	return d
}

func parseOverviewQuery(r *http.Request) (Criteria, int, error) {
	q := r.URL.Query()
	criteria := Criteria{
		Salesperson: q.Get("salesperson"),
		Customer:    q.Get("customer"),
		PaymentType: q.Get("payment_type"),
		Status:      q.Get("status"),
		ProductName: q.Get("product"),
	}
	if v := q.Get("invoicing"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Criteria{}, 0, errors.New("invoicing must be true or false")
		}
		criteria.Invoicing = &b
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 0 || m > 11 {
			return Criteria{}, 0, errors.New("month must be between 0 and 11")
		}
		criteria.Month = &m
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return Criteria{}, 0, errors.New("year must be an integer")
		}
		criteria.Year = &y
	}

	page := 1
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Criteria{}, 0, errors.New("page must be an integer")
		}
		page = p
	}
	return criteria, page, nil
}
