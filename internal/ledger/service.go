package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"
)

// RemoteClient is the boundary to the external sales data service. The
// engine never retries these calls and surfaces their failures as-is;
// retry policy, if any, belongs to the transport implementation.
type RemoteClient interface {
	FetchSales(ctx context.Context) ([]Sale, error)
	FetchSale(ctx context.Context, id int64) (*Sale, error)
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*Sale, error)
	UpdateSale(ctx context.Context, id int64, sale Sale) (*Sale, error)
	DeleteSale(ctx context.Context, id int64) error
}

// Service coordinates the ledger engine with the data service and the
// optional snapshot cache.
type Service struct {
	remote   RemoteClient
	cache    *Cache
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService wires a remote client with an optional cache.
func NewService(remote RemoteClient, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		remote:   remote,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
	}
}

// SaleRow pairs a sale with its recomputed totals for display.
type SaleRow struct {
	Sale
	Totals Totals `json:"totals"`
}

// Overview is one rendered view of the ledger: a page of matching sales
// plus the filtered and global summaries.
type Overview struct {
	Sales        []SaleRow `json:"sales"`
	Page         int       `json:"page"`
	PageSize     int       `json:"page_size"`
	TotalPages   int       `json:"total_pages"`
	TotalMatches int       `json:"total_matches"`
	Filtered     Summary   `json:"filtered_summary"`
	Global       Summary   `json:"global_summary"`
}

// Snapshot returns the full ledger ordered by descending id, served from
// the versioned cache when one is configured. The ledger is always
// replaced wholesale; there is no incremental patching.
func (s *Service) Snapshot(ctx context.Context) ([]Sale, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		sales, err := s.remote.FetchSales(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch sales: %w", err)
		}
		sort.Slice(sales, func(i, j int) bool { return sales[i].ID > sales[j].ID })
		return sales, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]Sale), nil
	}

	key, err := s.cache.BuildKey(ctx, cacheSnapshotKey)
	if err != nil {
		return nil, err
	}
	var sales []Sale
	if err := s.cache.FetchJSON(ctx, key, &sales, loader); err != nil {
		return nil, err
	}
	return sales, nil
}

// Overview filters, summarizes and paginates the ledger. Page selection
// happens after filtering; callers are expected to pass page 1 whenever
// the criteria changed.
func (s *Service) Overview(ctx context.Context, criteria Criteria, page int) (*Overview, error) {
	sales, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterSales(sales, criteria)

	pager := NewPager(0)
	pager.SetItems(filtered)
	pager.SetPage(page)

	slice := pager.CurrentSlice()
	rows := make([]SaleRow, 0, len(slice))
	for _, sale := range slice {
		rows = append(rows, SaleRow{Sale: sale, Totals: SaleTotals(sale)})
	}

	return &Overview{
		Sales:        rows,
		Page:         pager.Page(),
		PageSize:     pager.PageSize(),
		TotalPages:   pager.TotalPages(),
		TotalMatches: len(filtered),
		Filtered:     Summarize(filtered),
		Global:       Summarize(sales),
	}, nil
}

// Get fetches a single sale with its line items from the data service.
func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	sale, err := s.remote.FetchSale(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch sale %d: %w", id, err)
	}
	return sale, nil
}

// Create validates the draft, converts it to the create payload and
// hands it to the data service. A validation failure blocks the remote
// call entirely; a known-invalid payload is never submitted.
func (s *Service) Create(ctx context.Context, draft *SaleDraft) (*Sale, error) {
	payload, err := draft.CreatePayload()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("create payload: %w", err)
	}

	sale, err := s.remote.CreateSale(ctx, payload)
	if err != nil {
		s.logger.Error("create sale failed", slog.Any("error", err))
		return nil, fmt.Errorf("create sale: %w", err)
	}
	s.logger.Info("sale created", slog.Int64("sale_id", sale.ID), slog.Int("line_items", len(sale.LineItems)))
	s.bump(ctx)
	return sale, nil
}

// Update validates the draft against the persisted sale and hands the
// full mutated record to the data service.
func (s *Service) Update(ctx context.Context, id int64, draft *SaleDraft) (*Sale, error) {
	payload, err := draft.CreatePayload()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("update payload: %w", err)
	}

	base, err := s.remote.FetchSale(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch sale %d: %w", id, err)
	}

	mutated, err := draft.UpdatedSale(*base)
	if err != nil {
		return nil, err
	}

	sale, err := s.remote.UpdateSale(ctx, id, *mutated)
	if err != nil {
		s.logger.Error("update sale failed", slog.Int64("sale_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("update sale %d: %w", id, err)
	}
	s.logger.Info("sale updated", slog.Int64("sale_id", id))
	s.bump(ctx)
	return sale, nil
}

// Delete removes a sale by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.remote.DeleteSale(ctx, id); err != nil {
		s.logger.Error("delete sale failed", slog.Int64("sale_id", id), slog.Any("error", err))
		return fmt.Errorf("delete sale %d: %w", id, err)
	}
	s.logger.Info("sale deleted", slog.Int64("sale_id", id))
	s.bump(ctx)
	return nil
}

// Refresh discards any cached snapshot and re-warms it, returning the
// number of sales in the fresh ledger.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	if err := s.cache.Bump(ctx); err != nil {
		return 0, fmt.Errorf("bump cache: %w", err)
	}
	sales, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return len(sales), nil
}

func (s *Service) bump(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump failed", slog.Any("error", err))
	}
}
