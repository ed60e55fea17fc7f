// Package api talks to the storefront backend: catalog reads and order
// submission. The Gateway interface is what the application wires
// against; tests substitute an in-memory fake.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RaimNist/web-larek/internal/model"
)

// Gateway is the network collaborator of the application: one catalog
// read and one order submission, both context-aware. There is no retry,
// no de-duplication and no cancellation beyond the context.
type Gateway interface {
	GetItems(ctx context.Context) ([]model.Product, error)
	OrderItems(ctx context.Context, order model.Order) (model.OrderResult, error)
}

// Client is the HTTP Gateway implementation.
type Client struct {
	baseURL string
	cdnURL  string
	httpc   *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client (e.g. to shorten
// the timeout in tests).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpc = c
	}
}

// NewClient creates a Client for the given API base URL. Product image
// references are rewritten by prefixing cdnURL before they are handed to
// the caller.
func NewClient(baseURL, cdnURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cdnURL:  strings.TrimSuffix(cdnURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listResponse is the wire shape of GET /product.
type listResponse struct {
	Total int             `json:"total"`
	Items []model.Product `json:"items"`
}

// GetItems fetches the full catalog. Image references come back
// CDN-prefixed and ready to render.
func (c *Client) GetItems(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product", nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: unexpected status %s", resp.Status)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}

	items := make([]model.Product, len(list.Items))
	for i, item := range list.Items {
		item.Image = c.cdnURL + item.Image
		items[i] = item
	}
	return items, nil
}

// OrderItems submits the order and returns the confirmation.
func (c *Client) OrderItems(ctx context.Context, order model.Order) (model.OrderResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return model.OrderResult{}, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return model.OrderResult{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return model.OrderResult{}, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return model.OrderResult{}, fmt.Errorf("submit order: unexpected status %s", resp.Status)
	}

	var result model.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.OrderResult{}, fmt.Errorf("decode order result: %w", err)
	}
	return result, nil
}
