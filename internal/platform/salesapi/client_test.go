package salesapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprenta-pos/imprenta-pos/internal/ledger"
	"github.com/imprenta-pos/imprenta-pos/internal/refdata"
)

func TestFetchSales(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/sales", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":2,"salesperson":"María","customer":"Hotel","status":"in_progress","line_items":[]}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	sales, err := client.FetchSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(2), sales[0].ID)
	assert.NotEmpty(t, gotRequestID)
}

func TestCreateSaleSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sales", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ledger.CreateSaleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "María", req.NewSalespersonName)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ledger.Sale{ID: 9, Salesperson: req.NewSalespersonName})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	sale, err := client.CreateSale(context.Background(), &ledger.CreateSaleRequest{
		BranchID:           1,
		NewSalespersonName: "María",
		NewCustomerName:    "Hotel",
		Status:             ledger.StatusInProgress,
		LineItems:          []ledger.CreateLineItem{{ProductID: 7, Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), sale.ID)
}

func TestStatusErrorCarriesCodeAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such sale"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.FetchSale(context.Background(), 123)
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode())
	assert.Contains(t, serr.Body, "no such sale")

	var sc ledger.StatusCoder
	require.ErrorAs(t, err, &sc)
	assert.Equal(t, http.StatusNotFound, sc.StatusCode())
}

func TestDeleteSale(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	require.NoError(t, client.DeleteSale(context.Background(), 5))
	assert.Equal(t, "DELETE /sales/5", gotPath)
}

func TestReferenceEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /reference/branches":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Centro"}]`))
		case "POST /reference/colors":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(refdata.Entry{ID: 3, Name: body["name"]})
		case "DELETE /reference/products/4":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	entries, err := client.FetchReference(ctx, refdata.KindBranches)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Centro", entries[0].Name)

	entry, err := client.CreateReference(ctx, refdata.KindColors, "Rojo")
	require.NoError(t, err)
	assert.Equal(t, "Rojo", entry.Name)

	require.NoError(t, client.DeleteReference(ctx, refdata.KindProducts, 4))
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/healthz", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	assert.NoError(t, client.Ping(context.Background()))
}
