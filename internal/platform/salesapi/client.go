// Package salesapi is the HTTP client for the sales data service that
// owns the persisted ledger. The engine computes; the data service stores.
package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imprenta-pos/imprenta-pos/internal/ledger"
	"github.com/imprenta-pos/imprenta-pos/internal/refdata"
)

// StatusError carries a non-2xx response from the data service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("sales data service returned status %d", e.Code)
	}
	return fmt.Sprintf("sales data service returned status %d: %s", e.Code, e.Body)
}

// StatusCode satisfies ledger.StatusCoder so callers can map remote
// statuses without importing this package's error type.
func (e *StatusError) StatusCode() int { return e.Code }

// Client wraps interactions with the sales data service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ping checks if the data service is available.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// FetchSales retrieves the full ledger.
func (c *Client) FetchSales(ctx context.Context) ([]ledger.Sale, error) {
	var sales []ledger.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// FetchSale retrieves one sale with its line items.
func (c *Client) FetchSale(ctx context.Context, id int64) (*ledger.Sale, error) {
	var sale ledger.Sale
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sales/%d", id), nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// CreateSale registers a new sale.
func (c *Client) CreateSale(ctx context.Context, req *ledger.CreateSaleRequest) (*ledger.Sale, error) {
	var sale ledger.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateSale replaces a persisted sale.
func (c *Client) UpdateSale(ctx context.Context, id int64, sale ledger.Sale) (*ledger.Sale, error) {
	var updated ledger.Sale
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/sales/%d", id), sale, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSale removes a sale by id.
func (c *Client) DeleteSale(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/sales/%d", id), nil, nil)
}

// FetchReference retrieves one reference catalog.
func (c *Client) FetchReference(ctx context.Context, kind refdata.Kind) ([]refdata.Entry, error) {
	var entries []refdata.Entry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reference/%s", kind), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateReference adds an entry to a reference catalog.
func (c *Client) CreateReference(ctx context.Context, kind refdata.Kind, name string) (*refdata.Entry, error) {
	payload := map[string]string{"name": name}
	var entry refdata.Entry
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/reference/%s", kind), payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteReference removes an entry from a reference catalog.
func (c *Client) DeleteReference(ctx context.Context, kind refdata.Kind, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reference/%s/%d", kind, id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
