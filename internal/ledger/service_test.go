package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRemote struct {
	sales      []Sale
	fetchCalls int

	createdWith *CreateSaleRequest
	updatedWith *Sale
	deletedID   int64

	err error
}

func (m *mockRemote) FetchSales(ctx context.Context) ([]Sale, error) {
	m.fetchCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Sale, len(m.sales))
	copy(out, m.sales)
	return out, nil
}

func (m *mockRemote) FetchSale(ctx context.Context, id int64) (*Sale, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.sales {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRemote) CreateSale(ctx context.Context, req *CreateSaleRequest) (*Sale, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createdWith = req
	return &Sale{ID: 99, Salesperson: req.NewSalespersonName, Customer: req.NewCustomerName}, nil
}

func (m *mockRemote) UpdateSale(ctx context.Context, id int64, sale Sale) (*Sale, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updatedWith = &sale
	return &sale, nil
}

func (m *mockRemote) DeleteSale(ctx context.Context, id int64) error {
	m.deletedID = id
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCachedService(t *testing.T, remote *mockRemote) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(remote, NewCache(client, time.Minute), testLogger())
}

func TestSnapshotSortsDescending(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{ID: 1}, {ID: 3}, {ID: 2}}}
	svc := NewService(remote, nil, testLogger())

	sales, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, int64(3), sales[0].ID)
	assert.Equal(t, int64(2), sales[1].ID)
	assert.Equal(t, int64(1), sales[2].ID)
}

func TestSnapshotServedFromCache(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{ID: 1}, {ID: 2}}}
	svc := newCachedService(t, remote)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, remote.fetchCalls)
}

func TestOverviewPaginatesAndSummarizes(t *testing.T) {
	sales := make([]Sale, 45)
	for i := range sales {
		sales[i] = Sale{
			ID:          int64(i + 1),
			Salesperson: "María",
			LineItems:   []LineItem{{Quantity: 1, UnitPrice: 10}},
		}
	}
	remote := &mockRemote{sales: sales}
	svc := NewService(remote, nil, testLogger())

	view, err := svc.Overview(context.Background(), Criteria{}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, view.Page)
	assert.Equal(t, PageSize, view.PageSize)
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 45, view.TotalMatches)
	assert.Len(t, view.Sales, 5)
	assert.InDelta(t, 450.0, view.Global.TotalRevenue, 1e-9)
	assert.Equal(t, view.Global, view.Filtered)
	assert.Equal(t, 10.0, view.Sales[0].Totals.Base)
}

func TestOverviewClampsPage(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{ID: 1}, {ID: 2}}}
	svc := NewService(remote, nil, testLogger())

	view, err := svc.Overview(context.Background(), Criteria{}, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Sales, 2)
}

func TestOverviewFilteredSummaryDiffersFromGlobal(t *testing.T) {
	remote := &mockRemote{sales: []Sale{
		{ID: 1, Salesperson: "María", LineItems: []LineItem{{Quantity: 1, UnitPrice: 10}}},
		{ID: 2, Salesperson: "Jorge", LineItems: []LineItem{{Quantity: 1, UnitPrice: 30}}},
	}}
	svc := NewService(remote, nil, testLogger())

	view, err := svc.Overview(context.Background(), Criteria{Salesperson: "jorge"}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, view.TotalMatches)
	assert.InDelta(t, 30.0, view.Filtered.TotalRevenue, 1e-9)
	assert.InDelta(t, 40.0, view.Global.TotalRevenue, 1e-9)
}

func TestCreateBlocksInvalidDraft(t *testing.T) {
	remote := &mockRemote{}
	svc := NewService(remote, nil, testLogger())

	d := NewSaleDraft()
	_, err := svc.Create(context.Background(), d)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, remote.createdWith)
}

func TestCreateSubmitsAndBumpsCache(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{ID: 1}}}
	svc := newCachedService(t, remote)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, remote.fetchCalls)

	d := NewSaleDraft()
	d.BranchID = "1"
	d.Salesperson = "María"
	d.Customer = "Hotel"
	d.Lines.Add()
	_ = d.Lines.Update(0, FieldProduct, "7")
	_ = d.Lines.Update(0, FieldUnitPrice, "10")

	sale, err := svc.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, int64(99), sale.ID)
	require.NotNil(t, remote.createdWith)

	// The bump invalidated the cached snapshot.
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, remote.fetchCalls)
}

func TestUpdateKeepsIdentity(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{
		ID:          5,
		Date:        time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		BranchID:    1,
		Salesperson: "María",
		Customer:    "Hotel",
		LineItems:   []LineItem{{ProductID: 7, Quantity: 1, UnitPrice: 10}},
	}}}
	svc := NewService(remote, nil, testLogger())

	d := DraftOf(remote.sales[0])
	d.Customer = "Hotel Casa Grande"

	sale, err := svc.Update(context.Background(), 5, d)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sale.ID)
	assert.Equal(t, remote.sales[0].Date, sale.Date)
	assert.Equal(t, "Hotel Casa Grande", sale.Customer)
}

func TestUpdateValidatesBeforeFetch(t *testing.T) {
	remote := &mockRemote{}
	svc := NewService(remote, nil, testLogger())

	_, err := svc.Update(context.Background(), 404, NewSaleDraft())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateMissingSale(t *testing.T) {
	remote := &mockRemote{}
	svc := NewService(remote, nil, testLogger())

	d := NewSaleDraft()
	d.BranchID = "1"
	d.Salesperson = "María"
	d.Customer = "Hotel"
	d.Lines.Add()
	_ = d.Lines.Update(0, FieldProduct, "7")
	_ = d.Lines.Update(0, FieldUnitPrice, "10")

	_, err := svc.Update(context.Background(), 404, d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBumpsCache(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{ID: 1}}}
	svc := newCachedService(t, remote)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Equal(t, int64(1), remote.deletedID)

	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, remote.fetchCalls)
}

func TestRefreshReportsCount(t *testing.T) {
	remote := &mockRemote{sales: []Sale{{ID: 1}, {ID: 2}, {ID: 3}}}
	svc := newCachedService(t, remote)

	count, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
