package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored as their JSON encoding; Get returns ErrCacheMiss for absent or expired keys.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// StoreClient defines the interface for interacting with a store Admin API
type StoreClient interface {
	ListProducts(ctx context.Context, limit int) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateOrder(ctx context.Context, items []LineItem, customer Customer, address ShippingAddress) (*Order, error)
	ListOrders(ctx context.Context, limit int, status string) ([]Order, error)
}

// StoreClientFactory builds a StoreClient for a store URL and access token
type StoreClientFactory func(storeURL, accessToken string) StoreClient

// Completer is the text-completion capability of an AI provider
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFactory builds a Completer for the given AI configuration with a reply token budget
type CompleterFactory func(cfg AIConfig, maxTokens int) (Completer, error)

// ConnectionStore persists store connections between restarts
type ConnectionStore interface {
	Load() ([]StoreRecord, error)
	Save(records []StoreRecord) error
}

// FlightProvider is a source of flight offers
type FlightProvider interface {
	Search(ctx context.Context, params FlightSearchParams) ([]FlightOffer, error)
	Details(ctx context.Context, flightID string) (*FlightDetails, error)
	PopularDestinations(ctx context.Context, origin string) ([]Destination, error)
	SearchAirports(ctx context.Context, query string) ([]Airport, error)
}
