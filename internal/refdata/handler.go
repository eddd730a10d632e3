package refdata

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/imprenta-pos/imprenta-pos/internal/ledger"
	"github.com/imprenta-pos/imprenta-pos/internal/platform/httpx"
)

// Handler exposes the reference catalogs over JSON HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the reference data handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Catalog)
	r.Get("/{kind}", h.List)
	r.Post("/{kind}", h.Create)
	r.Delete("/{kind}/{id}", h.Delete)
}

// Catalog returns every reference list in one response.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.Catalog(r.Context())
	if err != nil {
		h.logger.Error("fetch catalog failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, catalog)
}

// List returns one reference list by kind.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), Kind(chi.URLParam(r, "kind")))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// Create adds a new entry to a reference list.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	entry, err := h.service.Add(r.Context(), Kind(chi.URLParam(r, "kind")), req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// Delete removes an entry from a reference list.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid id", "entry id must be an integer")
		return
	}
	if err := h.service.Remove(r.Context(), Kind(chi.URLParam(r, "kind")), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownKind):
		httpx.Problem(w, http.StatusNotFound, "Unknown catalog", err.Error())
	case errors.Is(err, ErrEmptyName):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation failed", err.Error())
	default:
		var sc ledger.StatusCoder
		if errors.As(err, &sc) && sc.StatusCode() == http.StatusNotFound {
			httpx.Problem(w, http.StatusNotFound, "Entry not found", "")
			return
		}
		httpx.Problem(w, http.StatusBadGateway, "Sales data service error", err.Error())
	}
}
