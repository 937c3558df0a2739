package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shopmate/backend/internal/domain"
)

// Search defaults
const (
	defaultPerStoreLimit  = 10
	defaultCompareLimit   = 50
	defaultFetchTimeout   = 15 * time.Second
	defaultMaxConcurrency = 8
	dealsFetchSize        = 100
	defaultDealsLimit     = 10
	browseFetchSize       = 200
	defaultBrowseLimit    = 20
)

// ProductAdvisor writes the assistant's reply for a set of search results
type ProductAdvisor interface {
	ProductAdvice(ctx context.Context, query string, results []domain.SearchResult, totalStores int) string
}

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	// PerStoreLimit caps products fetched per store and term
	PerStoreLimit int
	// CompareLimit caps products fetched per store for a price comparison
	CompareLimit int
	// FetchTimeout bounds each store fetch
	FetchTimeout time.Duration
	// MaxConcurrentStores bounds how many stores are queried at once
	MaxConcurrentStores int
	EnableDebugLogging  bool
}

// SearchResponse is the result of a chat search
type SearchResponse struct {
	Query         string                `json:"query"`
	StoreID       string                `json:"storeId,omitempty"`
	Results       []domain.SearchResult `json:"products"`
	TotalStores   int                   `json:"totalStores"`
	TotalProducts int                   `json:"totalProducts"`
	SearchTerms   []string              `json:"searchTerms"`
	AIResponse    string                `json:"aiResponse"`
}

// StoreComparison is one store's category price summary, or the error that prevented it
type StoreComparison struct {
	StoreID       string                        `json:"storeId"`
	StoreName     string                        `json:"storeName"`
	TotalProducts int                           `json:"totalProducts"`
	Categories    []domain.CategoryPriceSummary `json:"categories,omitempty"`
	Error         string                        `json:"error,omitempty"`
}

// CompareResponse is the result of a cross-store price comparison
type CompareResponse struct {
	SearchTerm  string            `json:"searchTerm"`
	TotalStores int               `json:"totalStores"`
	Stores      []StoreComparison `json:"stores"`
}

// SearchService runs product searches across the connected stores
type SearchService struct {
	stores   *StoreService
	expander *TermExpander
	advisor  ProductAdvisor
	logger   *zap.Logger

	perStoreLimit      int
	compareLimit       int
	fetchTimeout       time.Duration
	maxConcurrency     int
	enableDebugLogging bool
}

// NewSearchService creates a search service. advisor may be nil, in which case replies use demo text.
func NewSearchService(
	stores *StoreService,
	expander *TermExpander,
	advisor ProductAdvisor,
	logger *zap.Logger,
	config SearchServiceConfig,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expander == nil {
		expander = NewTermExpander(logger, config.EnableDebugLogging)
	}

	s := &SearchService{
		stores:             stores,
		expander:           expander,
		advisor:            advisor,
		logger:             logger,
		perStoreLimit:      config.PerStoreLimit,
		compareLimit:       config.CompareLimit,
		fetchTimeout:       config.FetchTimeout,
		maxConcurrency:     config.MaxConcurrentStores,
		enableDebugLogging: config.EnableDebugLogging,
	}
	if s.perStoreLimit <= 0 {
		s.perStoreLimit = defaultPerStoreLimit
	}
	if s.compareLimit <= 0 {
		s.compareLimit = defaultCompareLimit
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = defaultFetchTimeout
	}
	if s.maxConcurrency <= 0 {
		s.maxConcurrency = defaultMaxConcurrency
	}
	return s
}

// Search answers a chat query. With a storeID only that store is searched for the raw
// query; otherwise the query is expanded and every connected store is searched.
func (s *SearchService) Search(ctx context.Context, query, storeID string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("query", "search query is required")
	}

	totalStores := s.stores.Count()
	var (
		terms   []string
		results []domain.SearchResult
	)

	if storeID != "" {
		store, err := s.stores.Get(storeID)
		if err != nil {
			return nil, err
		}
		terms = []string{query}

		products, err := s.fetch(ctx, store, query, s.perStoreLimit)
		if err != nil {
			return nil, err
		}
		results = make([]domain.SearchResult, 0, len(products))
		for i := range products {
			results = append(results, toSearchResult(store, &products[i]))
		}
	} else {
		terms = s.expander.Expand(query)
		results = s.Aggregate(ctx, terms, s.stores.List(), s.perStoreLimit)
	}

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.String("store_id", storeID),
		zap.Int("terms", len(terms)),
		zap.Int("stores", totalStores),
		zap.Int("results", len(results)),
	)

	return &SearchResponse{
		Query:         query,
		StoreID:       storeID,
		Results:       results,
		TotalStores:   totalStores,
		TotalProducts: len(results),
		SearchTerms:   terms,
		AIResponse:    s.advice(ctx, query, results, totalStores),
	}, nil
}

// Aggregate fetches every term from every store and merges the hits cheapest first.
// Each store contributes a product at most once. A failed (store, term) fetch is skipped.
func (s *SearchService) Aggregate(ctx context.Context, terms []string, stores []domain.StoreConnection, perStoreLimit int) []domain.SearchResult {
	perStore := make([][]domain.SearchResult, len(stores))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i := range stores {
		store := &stores[i]
		g.Go(func() error {
			perStore[i] = s.searchStore(ctx, store, terms, perStoreLimit)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]domain.SearchResult, 0)
	for _, hits := range perStore {
		results = append(results, hits...)
	}
	sortResultsByPrice(results)
	return results
}

// searchStore runs every term against one store, skipping products already seen there
func (s *SearchService) searchStore(ctx context.Context, store *domain.StoreConnection, terms []string, limit int) []domain.SearchResult {
	seen := make(map[string]struct{})
	var hits []domain.SearchResult

	for _, term := range terms {
		products, err := s.fetch(ctx, store, term, limit)
		if err != nil {
			s.logger.Warn("store search failed",
				zap.String("store_id", store.ID),
				zap.String("store_name", store.Name),
				zap.String("term", term),
				zap.Error(err),
			)
			continue
		}

		added := 0
		for i := range products {
			if _, ok := seen[products[i].ID]; ok {
				continue
			}
			seen[products[i].ID] = struct{}{}
			hits = append(hits, toSearchResult(store, &products[i]))
			added++
		}

		if s.enableDebugLogging {
			s.logger.Debug("term fetched",
				zap.String("store_id", store.ID),
				zap.String("term", term),
				zap.Int("fetched", len(products)),
				zap.Int("added", added),
			)
		}
	}
	return hits
}

// Compare summarizes prices by category in every store for one search term
func (s *SearchService) Compare(ctx context.Context, searchTerm string) (*CompareResponse, error) {
	searchTerm = strings.TrimSpace(searchTerm)
	if searchTerm == "" {
		return nil, domain.NewValidationError("searchTerm", "search term is required")
	}

	stores := s.stores.List()
	comparisons := make([]StoreComparison, len(stores))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i := range stores {
		store := &stores[i]
		g.Go(func() error {
			comparison := StoreComparison{StoreID: store.ID, StoreName: store.Name}
			products, err := s.fetch(ctx, store, searchTerm, s.compareLimit)
			if err != nil {
				s.logger.Warn("store comparison failed", zap.String("store_id", store.ID), zap.Error(err))
				comparison.Error = err.Error()
			} else {
				comparison.TotalProducts = len(products)
				comparison.Categories = GroupByCategory(products)
			}
			comparisons[i] = comparison
			return nil
		})
	}
	_ = g.Wait()

	return &CompareResponse{
		SearchTerm:  searchTerm,
		TotalStores: len(stores),
		Stores:      comparisons,
	}, nil
}

// BestDeals returns a store's products with the best deal scores
func (s *SearchService) BestDeals(ctx context.Context, storeID string, limit int) ([]DealProduct, error) {
	if limit <= 0 {
		limit = defaultDealsLimit
	}
	products, err := s.storeProducts(ctx, storeID, dealsFetchSize)
	if err != nil {
		return nil, err
	}
	return BestDeals(products, limit), nil
}

// Vendor returns a store's products from a vendor, cheapest first
func (s *SearchService) Vendor(ctx context.Context, storeID, vendor string, limit int) ([]domain.Product, error) {
	if strings.TrimSpace(vendor) == "" {
		return nil, domain.NewValidationError("vendor", "vendor is required")
	}
	if limit <= 0 {
		limit = defaultBrowseLimit
	}
	products, err := s.storeProducts(ctx, storeID, browseFetchSize)
	if err != nil {
		return nil, err
	}
	return SearchByVendor(products, strings.TrimSpace(vendor), limit), nil
}

// PriceRange returns a store's products priced within [minPrice, maxPrice], cheapest first
func (s *SearchService) PriceRange(ctx context.Context, storeID string, minPrice, maxPrice float64, limit int) ([]domain.Product, error) {
	if minPrice < 0 || maxPrice < 0 {
		return nil, domain.NewValidationError("min", "prices must not be negative")
	}
	if minPrice > maxPrice {
		return nil, domain.NewValidationError("max", "max price must not be below min price")
	}
	if limit <= 0 {
		limit = defaultBrowseLimit
	}
	products, err := s.storeProducts(ctx, storeID, browseFetchSize)
	if err != nil {
		return nil, err
	}
	return PriceRange(products, minPrice, maxPrice, limit), nil
}

func (s *SearchService) storeProducts(ctx context.Context, storeID string, size int) ([]domain.Product, error) {
	store, err := s.stores.Get(storeID)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, store, "", size)
}

// fetch bounds a single store fetch by the fetch timeout
func (s *SearchService) fetch(ctx context.Context, store *domain.StoreConnection, term string, limit int) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	return s.stores.FetchProducts(ctx, store, term, limit)
}

func (s *SearchService) advice(ctx context.Context, query string, results []domain.SearchResult, totalStores int) string {
	if s.advisor == nil {
		return DemoProductResponse(query, results, totalStores)
	}
	return s.advisor.ProductAdvice(ctx, query, results, totalStores)
}

func toSearchResult(store *domain.StoreConnection, p *domain.Product) domain.SearchResult {
	return domain.SearchResult{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price(),
		Vendor:    p.Vendor,
		Type:      p.ProductType,
		Image:     p.ImageURL(),
		StoreID:   store.ID,
		StoreName: store.Name,
		Category:  CategoryLabel(p),
	}
}

// sortResultsByPrice sorts ascending by price, keeping ties in insertion order
func sortResultsByPrice(results []domain.SearchResult) {
	slices.SortStableFunc(results, func(a, b domain.SearchResult) int {
		return cmp.Compare(a.Price, b.Price)
	})
}
