// Package api is the JSON/HTTP client for the storefront backend. The
// backend owns products, orders, payments and inquiries; this client only
// speaks the published contract and surfaces its `detail` error messages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pranesta/storefront/internal/domain"
)

const defaultTimeout = 30 * time.Second

// BackendError is a non-success response from the backend. Detail carries
// the backend-provided message when the body had one.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client calls the storefront backend. All requests share one instrumented
// http.Client and pass through a circuit breaker guarding the backend; the
// breaker never retries, so every user action still makes a single attempt.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name: "storefront-backend",
		}),
	}
}

// OrderRequest is the POST /api/orders body.
type OrderRequest struct {
	Items         []domain.CartLine `json:"items"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
}

type orderResponse struct {
	OrderID string `json:"order_id"`
}

type intentRequest struct {
	OrderID string `json:"order_id"`
}

type intentResponse struct {
	Reference string `json:"reference"`
}

type confirmRequest struct {
	OrderID   string `json:"order_id"`
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

// Products fetches the catalog, optionally constrained to one category tag.
// An empty category or the sentinel "all" means unfiltered.
func (c *Client) Products(ctx context.Context, category string) ([]domain.Product, error) {
	u := c.baseURL + "/api/products"
	if category != "" && category != "all" {
		u += "?category=" + url.QueryEscape(category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	var products []domain.Product
	if err := c.do(req, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateOrder submits the cart's lines plus the customer identity and
// returns the backend's order id.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (string, error) {
	var resp orderResponse
	if err := c.postJSON(ctx, "/api/orders", order, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

// CreatePaymentIntent starts a payment for the order and returns the
// reference token to be echoed back on confirmation.
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID string) (string, error) {
	var resp intentResponse
	if err := c.postJSON(ctx, "/api/payments/create-intent", intentRequest{OrderID: orderID}, &resp); err != nil {
		return "", err
	}
	return resp.Reference, nil
}

// ConfirmPayment reports the (simulated) gateway outcome for the order.
func (c *Client) ConfirmPayment(ctx context.Context, orderID, reference string, success bool) error {
	body := confirmRequest{OrderID: orderID, Success: success, Reference: reference}
	return c.postJSON(ctx, "/api/payments/confirm", body, nil)
}

// SubmitInquiry posts a contact form verbatim.
func (c *Client) SubmitInquiry(ctx context.Context, inq domain.Inquiry) error {
	return c.postJSON(ctx, "/api/inquiries", inq, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.backendError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// backendError decodes the backend's {"detail": ...} error body. A body
// that fails to decode still yields a BackendError, just without detail.
func (c *Client) backendError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &BackendError{
		StatusCode: resp.StatusCode,
		Detail:     body.Detail,
	}
}
