package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shopmate/backend/internal/domain"
)

// DefaultAPIVersion is the Admin API version used when none is configured
const DefaultAPIVersion = "2024-10"

// productFields limits product listings to the fields the assistant reads
const productFields = "id,title,body_html,handle,product_type,vendor,tags,variants,images,status"

// Config holds Admin API client settings
type Config struct {
	APIVersion        string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	Burst             int
}

// StatusError is returned when the Admin API answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", domain.ErrStoreAPIFailure, e.Code, e.Body)
}

// Unwrap lets callers match StatusError against domain.ErrStoreAPIFailure
func (e *StatusError) Unwrap() error {
	return domain.ErrStoreAPIFailure
}

// Client handles communication with one store's Admin REST API
type Client struct {
	httpClient  *http.Client
	accessToken string
	baseURL     string
	rateLimiter *rate.Limiter
	maxRetries  int
	logger      *zap.Logger
	debug       bool
}

// NewClient creates a new Admin API client for storeURL
func NewClient(storeURL, accessToken string, cfg Config, logger *zap.Logger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RequestsPerSecond <= 0 {
		// Admin REST API bucket leaks at 2 requests per second
		cfg.RequestsPerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 40
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		accessToken: accessToken,
		baseURL:     fmt.Sprintf("%s/admin/api/%s", domain.NormalizeStoreURL(storeURL), cfg.APIVersion),
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:  cfg.MaxRetries,
		logger:      logger.With(zap.String("store_url", storeURL)),
	}
}

// NewFactory returns a domain.StoreClientFactory building clients with cfg
func NewFactory(cfg Config, logger *zap.Logger, debug bool) domain.StoreClientFactory {
	return func(storeURL, accessToken string) domain.StoreClient {
		client := NewClient(storeURL, accessToken, cfg, logger)
		client.SetDebug(debug)
		return client
	}
}

// SetDebug enables or disables per-request debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// isRetryable reports whether a status code is worth another attempt
func isRetryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// doRequest executes a single HTTP request with the access token header
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ShopMate/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrStoreAPIFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", domain.ErrStoreAPIFailure, err)
	}
	return resp.StatusCode, respBody, nil
}

// get performs a rate-limited GET with retries and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		if c.debug {
			c.logger.Debug("admin api request", zap.String("path", path), zap.Int("attempt", attempt))
		}

		status, body, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
		switch {
		case err != nil:
			c.logger.Warn("admin api request error", zap.String("path", path), zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
		case status >= 200 && status < 300:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		case isRetryable(status):
			c.logger.Warn("admin api error",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Int("status", status),
			)
			lastErr = &StatusError{Code: status, Body: truncate(string(body), 200)}
		default:
			return &StatusError{Code: status, Body: truncate(string(body), 200)}
		}

		if attempt < c.maxRetries {
			if err := sleep(ctx, exponentialBackoff(attempt)); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrStoreAPIFailure, err)
			}
		}
	}

	c.logger.Error("admin api retries exhausted", zap.String("path", path), zap.Error(lastErr))
	return lastErr
}

// post performs a single rate-limited POST. Order creation is not idempotent so it is never retried.
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	status, respBody, err := c.doRequest(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		c.logger.Warn("admin api error", zap.String("path", path), zap.Int("status", status))
		return &StatusError{Code: status, Body: truncate(string(respBody), 200)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListProducts returns up to limit products in catalog order
func (c *Client) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", productFields)

	var resp productsResponse
	if err := c.get(ctx, "/products.json", params, &resp); err != nil {
		return nil, err
	}

	products := MapProducts(resp.Products)
	if c.debug {
		c.logger.Debug("listed products", zap.Int("count", len(products)), zap.Int("limit", limit))
	}
	return products, nil
}

// GetProduct returns a single product by ID
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var resp productResponse
	err := c.get(ctx, "/products/"+url.PathEscape(productID)+".json", nil, &resp)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	if resp.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	product := MapProduct(resp.Product)
	return &product, nil
}

// CreateOrder places an order for the given line items
func (c *Client) CreateOrder(ctx context.Context, items []domain.LineItem, customer domain.Customer, address domain.ShippingAddress) (*domain.Order, error) {
	var resp orderResponse
	if err := c.post(ctx, "/orders.json", buildOrderRequest(items, customer, address), &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, fmt.Errorf("%w: empty order in response", domain.ErrStoreAPIFailure)
	}

	order := MapOrder(resp.Order)
	c.logger.Info("order created", zap.String("order_id", order.ID), zap.String("order_number", order.OrderNumber))
	return &order, nil
}

// ListOrders returns up to limit orders. An empty status or "any" lists all.
func (c *Client) ListOrders(ctx context.Context, limit int, status string) ([]domain.Order, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if status != "" && status != "any" {
		params.Set("status", status)
	}

	var resp ordersResponse
	if err := c.get(ctx, "/orders.json", params, &resp); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(resp.Orders))
	for i := range resp.Orders {
		orders = append(orders, MapOrder(&resp.Orders[i]))
	}
	return orders, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
