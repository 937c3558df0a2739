package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shopmate/backend/config"
	httpDelivery "github.com/shopmate/backend/internal/delivery/http"
	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/infrastructure/cache"
	"github.com/shopmate/backend/internal/infrastructure/flights"
	"github.com/shopmate/backend/internal/infrastructure/llm"
	"github.com/shopmate/backend/internal/infrastructure/logging"
	"github.com/shopmate/backend/internal/infrastructure/shopify"
	"github.com/shopmate/backend/internal/infrastructure/storefile"
	"github.com/shopmate/backend/internal/usecase"
)

const (
	serviceName    = "shopmate-backend"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting ShopMate backend",
		zap.String("version", serviceVersion),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	logger.Info("catalog cache ready", zap.Duration("ttl", cfg.Cache.CatalogTTL))

	var connections domain.ConnectionStore
	if cfg.Stores.ConnectionsFile != "" {
		connections = storefile.New(cfg.Stores.ConnectionsFile)
		logger.Info("store connections persisted", zap.String("path", cfg.Stores.ConnectionsFile))
	}

	// Enable debug mode in development environment
	debug := cfg.Server.Environment == "development" && cfg.Search.EnableDebugLogging

	newStoreClient := shopify.NewFactory(shopify.Config{
		APIVersion:        cfg.Shopify.APIVersion,
		Timeout:           cfg.Shopify.Timeout,
		MaxRetries:        cfg.Shopify.MaxRetries,
		RequestsPerSecond: cfg.Shopify.RequestsPerSecond,
		Burst:             cfg.Shopify.Burst,
	}, logger, debug)
	newCompleter := llm.NewFactory(cfg.AI.Timeout)

	// Initialize usecase layer
	stores := usecase.NewStoreService(newStoreClient, connections, memoryCache, logger, usecase.StoreServiceConfig{
		CatalogFetchSize:   cfg.Shopify.CatalogFetchSize,
		CatalogTTL:         cfg.Cache.CatalogTTL,
		EnableDebugLogging: debug,
	})
	ai := usecase.NewAIService(cfg.AI.Domain(), newCompleter, logger)
	search := usecase.NewSearchService(stores, usecase.NewTermExpander(logger, debug), ai, logger, usecase.SearchServiceConfig{
		PerStoreLimit:       cfg.Search.PerStoreLimit,
		CompareLimit:        cfg.Search.CompareLimit,
		FetchTimeout:        cfg.Search.FetchTimeout,
		MaxConcurrentStores: cfg.Search.MaxConcurrentStores,
		EnableDebugLogging:  debug,
	})
	orders := usecase.NewOrderService(stores, logger)
	flightService := usecase.NewFlightService(flights.NewCatalog(), ai, logger)

	if restored, err := stores.Restore(context.Background()); err != nil {
		logger.Warn("could not restore saved stores", zap.Error(err))
	} else if restored > 0 {
		logger.Info("saved stores reconnected", zap.Int("count", restored))
	}

	status := ai.Status()
	logger.Info("ai provider",
		zap.String("provider", status.Provider),
		zap.String("model", status.Model),
		zap.Bool("active", status.Active),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Stores:  stores,
		Search:  search,
		Orders:  orders,
		AI:      ai,
		Flights: flightService,
	}, httpDelivery.ServiceInfo{
		Name:        serviceName,
		Version:     serviceVersion,
		Port:        cfg.Server.Port,
		Environment: cfg.Server.Environment,
	}, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
