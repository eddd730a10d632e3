package refdata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Remote is the boundary to the data service's reference endpoints.
type Remote interface {
	FetchReference(ctx context.Context, kind Kind) ([]Entry, error)
	CreateReference(ctx context.Context, kind Kind, name string) (*Entry, error)
	DeleteReference(ctx context.Context, kind Kind, id int64) error
}

// Service coordinates reference catalog reads and writes.
type Service struct {
	remote Remote
	logger *slog.Logger
}

// NewService constructs the reference data service.
func NewService(remote Remote, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{remote: remote, logger: logger}
}

// Catalog fetches every reference list concurrently. One failing list
// fails the whole catalog; the form cannot render partially.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	var catalog Catalog

	targets := map[Kind]*[]Entry{
		KindBranches:          &catalog.Branches,
		KindSalespeople:       &catalog.Salespeople,
		KindCustomers:         &catalog.Customers,
		KindProducts:          &catalog.Products,
		KindColors:            &catalog.Colors,
		KindSizeTypes:         &catalog.SizeTypes,
		KindProductCategories: &catalog.ProductCategories,
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range Kinds() {
		kind := kind
		dest := targets[kind]
		g.Go(func() error {
			entries, err := s.remote.FetchReference(ctx, kind)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", kind, err)
			}
			*dest = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// List returns one catalog by kind.
func (s *Service) List(ctx context.Context, kind Kind) ([]Entry, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	entries, err := s.remote.FetchReference(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	return entries, nil
}

// Add creates a new catalog entry with the given name.
func (s *Service) Add(ctx context.Context, kind Kind, name string) (*Entry, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	entry, err := s.remote.CreateReference(ctx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	s.logger.Info("reference entry created", slog.String("kind", string(kind)), slog.Int64("id", entry.ID))
	return entry, nil
}

// Remove deletes a catalog entry by id.
func (s *Service) Remove(ctx context.Context, kind Kind, id int64) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if err := s.remote.DeleteReference(ctx, kind, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	s.logger.Info("reference entry deleted", slog.String("kind", string(kind)), slog.Int64("id", id))
	return nil
}
