package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/shopmate/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mutex    sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	gets     int
	sets     int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.gets++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockStoreClient is a mock implementation of domain.StoreClient
type MockStoreClient struct {
	mutex      sync.Mutex
	products   []domain.Product
	listError  error
	orderError error
	orders     []domain.Order

	listCalls   []int
	placed      [][]domain.LineItem
	customers   []domain.Customer
	addresses   []domain.ShippingAddress
	orderStatus string
}

func (m *MockStoreClient) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.listCalls = append(m.listCalls, limit)
	if m.listError != nil {
		return nil, m.listError
	}
	return takeN(append([]domain.Product(nil), m.products...), limit), nil
}

func (m *MockStoreClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := range m.products {
		if m.products[i].ID == productID {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockStoreClient) CreateOrder(ctx context.Context, items []domain.LineItem, customer domain.Customer, address domain.ShippingAddress) (*domain.Order, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.orderError != nil {
		return nil, m.orderError
	}
	m.placed = append(m.placed, items)
	m.customers = append(m.customers, customer)
	m.addresses = append(m.addresses, address)
	n := strconv.Itoa(1000 + len(m.placed))
	return &domain.Order{ID: "order-" + n, OrderNumber: n, Email: customer.Email, TotalPrice: "0.00", Currency: "ILS"}, nil
}

func (m *MockStoreClient) ListOrders(ctx context.Context, limit int, status string) ([]domain.Order, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.orderStatus = status
	return takeN(append([]domain.Order(nil), m.orders...), limit), nil
}

func (m *MockStoreClient) listCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.listCalls)
}

// clientRegistry hands out MockStoreClients by store URL
type clientRegistry map[string]*MockStoreClient

func (r clientRegistry) factory() domain.StoreClientFactory {
	return func(storeURL, accessToken string) domain.StoreClient {
		if c, ok := r[storeURL]; ok {
			return c
		}
		return &MockStoreClient{}
	}
}

// MockConnectionStore is an in-memory domain.ConnectionStore
type MockConnectionStore struct {
	records   []domain.StoreRecord
	loadError error
	saves     int
}

func (m *MockConnectionStore) Load() ([]domain.StoreRecord, error) {
	if m.loadError != nil {
		return nil, m.loadError
	}
	return append([]domain.StoreRecord(nil), m.records...), nil
}

func (m *MockConnectionStore) Save(records []domain.StoreRecord) error {
	m.saves++
	m.records = append([]domain.StoreRecord(nil), records...)
	return nil
}

// MockCompleter is a mock implementation of domain.Completer
type MockCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// completerFactory returns a factory handing out c and recording the requested budgets
func completerFactory(c *MockCompleter, budgets *[]int) domain.CompleterFactory {
	return func(cfg domain.AIConfig, maxTokens int) (domain.Completer, error) {
		if budgets != nil {
			*budgets = append(*budgets, maxTokens)
		}
		return c, nil
	}
}

func product(id, title, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    title,
		Vendor:   "Vendor " + id,
		Variants: []domain.Variant{{ID: "v" + id, Price: price, SKU: "SKU-" + id}},
	}
}
