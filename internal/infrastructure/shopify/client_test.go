package shopify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
)

const productsFixture = `{"products":[
	{"id":632910392,"title":"Gaming Laptop","body_html":null,"product_type":"Electronics","vendor":"Acme","tags":"tech, sale",
	 "variants":[{"id":808950810,"product_id":632910392,"price":"999.00","sku":"LT-1","inventory_quantity":4}],
	 "images":[{"id":850703190,"src":"https://cdn.example.com/laptop.png","alt":null}]},
	{"id":"921728736","title":"Kids Shirt","body_html":"<p>Cotton</p>","product_type":"Clothes","vendor":"Wearly","tags":"",
	 "variants":[{"id":1,"price":19.9,"sku":null}],"images":[]}
]}`

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "shpat_test", Config{RequestsPerSecond: 1000, Burst: 100}, zap.NewNop())
}

func TestNewClient(t *testing.T) {
	client := NewClient("my-store.myshopify.com/", "shpat_test", Config{}, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "shpat_test", client.accessToken)
	assert.Equal(t, "https://my-store.myshopify.com/admin/api/2024-10", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, 3, client.maxRetries)
	assert.False(t, client.debug)
}

func TestNewClient_CustomVersion(t *testing.T) {
	client := NewClient("http://localhost:9999", "tok", Config{APIVersion: "2025-01", Timeout: time.Second}, nil)

	assert.Equal(t, "http://localhost:9999/admin/api/2025-01", client.baseURL)
	assert.Equal(t, time.Second, client.httpClient.Timeout)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("shop.example.com", "tok", Config{}, nil)

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestListProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/products.json", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, productsFixture)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	products, err := client.ListProducts(context.Background(), 250)

	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "632910392", products[0].ID)
	assert.Equal(t, "", products[0].BodyHTML)
	assert.Equal(t, "999.00", products[0].RawPrice())
	assert.Equal(t, 999.0, products[0].Price())
	assert.Equal(t, "LT-1", products[0].SKU())
	assert.Equal(t, "https://cdn.example.com/laptop.png", products[0].ImageURL())

	assert.Equal(t, "921728736", products[1].ID)
	assert.Equal(t, "19.9", products[1].RawPrice())
	assert.Equal(t, "", products[1].SKU())
	assert.Empty(t, products[1].Images)
}

func TestListProducts_Unauthorized_NoRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"errors":"[API] Invalid API key or access token"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	products, err := client.ListProducts(context.Background(), 1)

	assert.Nil(t, products)
	assert.ErrorIs(t, err, domain.ErrStoreAPIFailure)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Body, "Invalid API key")
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestListProducts_ServerError_Retries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, productsFixture)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	products, err := client.ListProducts(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestListProducts_TooManyRequests_Retries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"products":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	products, err := client.ListProducts(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestListProducts_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.ListProducts(ctx, 10)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestListProducts_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"products": [`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListProducts(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/api/2024-10/products/42.json":
			io.WriteString(w, `{"product":{"id":42,"title":"Mug","variants":[{"id":7,"price":"12.50"}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"errors":"Not Found"}`)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		product, err := client.GetProduct(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "42", product.ID)
		assert.Equal(t, "Mug", product.Title)
		require.Len(t, product.Variants, 1)
		assert.Equal(t, "7", product.Variants[0].ID)
	})

	t.Run("not found", func(t *testing.T) {
		product, err := client.GetProduct(ctx, "404")
		assert.Nil(t, product)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestCreateOrder(t *testing.T) {
	var received createOrderRequest
	var raw map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/api/2024-10/orders.json", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		assert.NoError(t, json.Unmarshal(body, &raw))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"order":{"id":450789469,"order_number":1001,"name":"#1001","email":"a@b.com",
			"total_price":"25.00","currency":"ILS","financial_status":"pending","fulfillment_status":null}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	order, err := client.CreateOrder(context.Background(),
		[]domain.LineItem{{VariantID: "808950810", Quantity: 2}},
		domain.Customer{Email: "a@b.com", FirstName: "Dana", LastName: "Levi"},
		domain.ShippingAddress{Address1: "Herzl 1", City: "Tel Aviv", Country: "Israel"},
	)

	require.NoError(t, err)
	assert.Equal(t, "450789469", order.ID)
	assert.Equal(t, "1001", order.OrderNumber)
	assert.Equal(t, "25.00", order.TotalPrice)
	assert.Equal(t, "", order.FulfillmentStatus)

	require.Len(t, received.Order.LineItems, 1)
	assert.Equal(t, 2, received.Order.LineItems[0].Quantity)
	assert.Equal(t, "a@b.com", received.Order.Customer.Email)
	assert.Equal(t, "Tel Aviv", received.Order.ShippingAddress.City)
	assert.Equal(t, received.Order.ShippingAddress, received.Order.BillingAddress)

	// numeric variant IDs are sent as JSON numbers
	orderBody := raw["order"].(map[string]interface{})
	item := orderBody["line_items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(808950810), item["variant_id"])
}

func TestCreateOrder_ServerError_NoRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	order, err := client.CreateOrder(context.Background(), []domain.LineItem{{VariantID: "1", Quantity: 1}},
		domain.Customer{Email: "x@y.z"}, domain.ShippingAddress{})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrStoreAPIFailure)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestListOrders(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus string
	}{
		{name: "all orders", status: "", wantStatus: ""},
		{name: "any is not forwarded", status: "any", wantStatus: ""},
		{name: "open orders", status: "open", wantStatus: "open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "5", r.URL.Query().Get("limit"))
				assert.Equal(t, tt.wantStatus, r.URL.Query().Get("status"))
				io.WriteString(w, `{"orders":[{"id":1,"order_number":1001,"total_price":"10.00"},{"id":2,"order_number":1002}]}`)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			orders, err := client.ListOrders(context.Background(), 5, tt.status)

			require.NoError(t, err)
			require.Len(t, orders, 2)
			assert.Equal(t, "1001", orders[0].OrderNumber)
			assert.Equal(t, "2", orders[1].ID)
		})
	}
}

func TestNewFactory(t *testing.T) {
	factory := NewFactory(Config{}, zap.NewNop(), true)

	client, ok := factory("shop.example.com", "tok").(*Client)

	require.True(t, ok)
	assert.True(t, client.debug)
	assert.Equal(t, "tok", client.accessToken)
}
