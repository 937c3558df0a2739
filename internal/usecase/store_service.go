package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
)

const (
	// legacyStoreName and legacyOwner label stores connected through the legacy endpoint
	legacyStoreName = "Legacy Connection"
	legacyOwner     = "legacy@example.com"

	defaultCatalogFetchSize = 250
)

// StoreServiceConfig holds configuration for the store service
type StoreServiceConfig struct {
	// CatalogFetchSize is how many products are listed before client-side filtering
	CatalogFetchSize int
	// CatalogTTL is how long a listed catalog is reused. Zero disables caching.
	CatalogTTL         time.Duration
	EnableDebugLogging bool
}

// StoreService is the registry of connected stores and their catalog access
type StoreService struct {
	mutex  sync.RWMutex
	stores []*domain.StoreConnection

	// persistMutex makes snapshot and save one step
	persistMutex sync.Mutex

	newClient   domain.StoreClientFactory
	persistence domain.ConnectionStore
	cache       domain.CacheRepository
	logger      *zap.Logger

	catalogFetchSize   int
	catalogTTL         time.Duration
	enableDebugLogging bool
	now                func() time.Time
}

// NewStoreService creates a store registry. persistence and cache may be nil.
func NewStoreService(
	newClient domain.StoreClientFactory,
	persistence domain.ConnectionStore,
	cache domain.CacheRepository,
	logger *zap.Logger,
	config StoreServiceConfig,
) *StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}

	fetchSize := config.CatalogFetchSize
	if fetchSize <= 0 {
		fetchSize = defaultCatalogFetchSize
	}

	return &StoreService{
		newClient:          newClient,
		persistence:        persistence,
		cache:              cache,
		logger:             logger,
		catalogFetchSize:   fetchSize,
		catalogTTL:         config.CatalogTTL,
		enableDebugLogging: config.EnableDebugLogging,
		now:                time.Now,
	}
}

// Connect tests the credentials by listing one product and registers the store
func (s *StoreService) Connect(ctx context.Context, req domain.ConnectRequest) (*domain.StoreConnection, error) {
	if strings.TrimSpace(req.StoreName) == "" {
		return nil, domain.NewValidationError("storeName", "store name is required")
	}
	if strings.TrimSpace(req.StoreURL) == "" {
		return nil, domain.NewValidationError("storeUrl", "store URL is required")
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		return nil, domain.NewValidationError("accessToken", "access token is required")
	}

	storeURL := domain.NormalizeStoreURL(req.StoreURL)
	client := s.newClient(storeURL, req.AccessToken)

	if _, err := client.ListProducts(ctx, 1); err != nil {
		s.logger.Warn("store connection test failed",
			zap.String("store_url", storeURL),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreConnectionFailed, err)
	}

	store := &domain.StoreConnection{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.StoreName),
		URL:         storeURL,
		AccessToken: req.AccessToken,
		Owner:       req.OwnerEmail,
		CreatedAt:   s.now(),
		Client:      client,
	}

	s.mutex.Lock()
	s.stores = append(s.stores, store)
	s.mutex.Unlock()

	s.logger.Info("store connected",
		zap.String("store_id", store.ID),
		zap.String("store_name", store.Name),
		zap.String("store_url", store.URL),
	)
	s.persist()

	connected := *store
	return &connected, nil
}

// ConnectLegacy registers a store from the legacy connect form, which only carries URL and token
func (s *StoreService) ConnectLegacy(ctx context.Context, storeURL, accessToken string) (*domain.StoreConnection, error) {
	return s.Connect(ctx, domain.ConnectRequest{
		StoreName:   legacyStoreName,
		StoreURL:    storeURL,
		AccessToken: accessToken,
		OwnerEmail:  legacyOwner,
	})
}

// Restore reconnects the stores saved in the connections file without testing them
func (s *StoreService) Restore(ctx context.Context) (int, error) {
	if s.persistence == nil {
		return 0, nil
	}

	records, err := s.persistence.Load()
	if err != nil {
		return 0, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	restored := 0
	for _, rec := range records {
		if rec.ID == "" || rec.URL == "" || rec.AccessToken == "" {
			s.logger.Warn("skipping incomplete saved store", zap.String("store_id", rec.ID))
			continue
		}
		if s.indexLocked(rec.ID) >= 0 {
			continue
		}
		s.stores = append(s.stores, &domain.StoreConnection{
			ID:          rec.ID,
			Name:        rec.Name,
			URL:         rec.URL,
			AccessToken: rec.AccessToken,
			Owner:       rec.Owner,
			CreatedAt:   rec.ConnectedAt,
			Client:      s.newClient(rec.URL, rec.AccessToken),
		})
		restored++
	}

	s.logger.Info("restored saved stores", zap.Int("count", restored))
	return restored, nil
}

// List returns the connected stores in connection order
func (s *StoreService) List() []domain.StoreConnection {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stores := make([]domain.StoreConnection, len(s.stores))
	for i, store := range s.stores {
		stores[i] = *store
	}
	return stores
}

// Get returns the store with the given ID
func (s *StoreService) Get(storeID string) (*domain.StoreConnection, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := s.indexLocked(storeID)
	if i < 0 {
		return nil, domain.ErrStoreNotFound
	}
	store := *s.stores[i]
	return &store, nil
}

// Count returns the number of connected stores
func (s *StoreService) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.stores)
}

// LastConnected returns the most recently connected store, or nil
func (s *StoreService) LastConnected() *domain.StoreConnection {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.stores) == 0 {
		return nil
	}
	store := *s.stores[len(s.stores)-1]
	return &store
}

// Disconnect removes a store from the registry
func (s *StoreService) Disconnect(ctx context.Context, storeID string) error {
	s.mutex.Lock()
	i := s.indexLocked(storeID)
	if i < 0 {
		s.mutex.Unlock()
		return domain.ErrStoreNotFound
	}
	s.stores = slices.Delete(s.stores, i, i+1)
	s.mutex.Unlock()

	s.invalidateCatalog(ctx, storeID)
	s.logger.Info("store disconnected", zap.String("store_id", storeID))
	s.persist()
	return nil
}

// DisconnectAll removes every store and returns how many were connected
func (s *StoreService) DisconnectAll(ctx context.Context) int {
	s.mutex.Lock()
	removed := s.stores
	s.stores = nil
	s.mutex.Unlock()

	for _, store := range removed {
		s.invalidateCatalog(ctx, store.ID)
	}
	s.logger.Info("all stores disconnected", zap.Int("count", len(removed)))
	s.persist()
	return len(removed)
}

// TestConnection lists one product from the first connected store
func (s *StoreService) TestConnection(ctx context.Context) (int, error) {
	s.mutex.RLock()
	if len(s.stores) == 0 {
		s.mutex.RUnlock()
		return 0, domain.ErrNoStoresConnected
	}
	first := *s.stores[0]
	s.mutex.RUnlock()

	products, err := first.Client.ListProducts(ctx, 1)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreConnectionFailed, err)
	}
	return len(products), nil
}

// FetchProducts returns up to limit products of a store that match term.
// A blank term lists the first limit products; otherwise the catalog snapshot is filtered.
func (s *StoreService) FetchProducts(ctx context.Context, store *domain.StoreConnection, term string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		return []domain.Product{}, nil
	}

	if strings.TrimSpace(term) == "" {
		return store.Client.ListProducts(ctx, limit)
	}

	catalog, err := s.catalog(ctx, store)
	if err != nil {
		return nil, err
	}

	matched := FilterProducts(term, catalog, limit)
	if s.enableDebugLogging {
		s.logger.Debug("filtered store catalog",
			zap.String("store_id", store.ID),
			zap.String("term", term),
			zap.Int("catalog_size", len(catalog)),
			zap.Int("matched", len(matched)),
		)
	}
	return matched, nil
}

// catalog returns the store's product listing, from cache when fresh
func (s *StoreService) catalog(ctx context.Context, store *domain.StoreConnection) ([]domain.Product, error) {
	key := catalogCacheKey(store.ID)

	if s.cache != nil && s.catalogTTL > 0 {
		raw, err := s.cache.Get(ctx, key)
		if err == nil {
			var products []domain.Product
			if err := json.Unmarshal(raw, &products); err == nil {
				return products, nil
			}
			s.logger.Warn("discarding unreadable catalog snapshot", zap.String("store_id", store.ID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.String("store_id", store.ID), zap.Error(err))
		}
	}

	products, err := store.Client.ListProducts(ctx, s.catalogFetchSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.catalogTTL > 0 {
		if err := s.cache.Set(ctx, key, products, s.catalogTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("store_id", store.ID), zap.Error(err))
		}
	}
	return products, nil
}

func (s *StoreService) invalidateCatalog(ctx context.Context, storeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey(storeID)); err != nil {
		s.logger.Warn("catalog cache delete failed", zap.String("store_id", storeID), zap.Error(err))
	}
}

// persist writes the registry to the connections file. Failures are logged, not returned.
func (s *StoreService) persist() {
	if s.persistence == nil {
		return
	}

	s.persistMutex.Lock()
	defer s.persistMutex.Unlock()

	s.mutex.RLock()
	records := make([]domain.StoreRecord, len(s.stores))
	for i, store := range s.stores {
		records[i] = domain.StoreRecord{
			ID:          store.ID,
			Name:        store.Name,
			URL:         store.URL,
			AccessToken: store.AccessToken,
			Owner:       store.Owner,
			ConnectedAt: store.CreatedAt,
		}
	}
	s.mutex.RUnlock()

	if err := s.persistence.Save(records); err != nil {
		s.logger.Error("failed to save store connections", zap.Error(err))
	}
}

func (s *StoreService) indexLocked(storeID string) int {
	return slices.IndexFunc(s.stores, func(store *domain.StoreConnection) bool {
		return store.ID == storeID
	})
}

func catalogCacheKey(storeID string) string {
	return "catalog:" + storeID
}
