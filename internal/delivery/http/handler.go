package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/usecase"
)

// Services are the usecases served over HTTP
type Services struct {
	Stores  *usecase.StoreService
	Search  *usecase.SearchService
	Orders  *usecase.OrderService
	AI      *usecase.AIService
	Flights *usecase.FlightService
}

// ServiceInfo describes the running service for the detailed health check
type ServiceInfo struct {
	Name        string
	Version     string
	Port        string
	Environment string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	stores  *usecase.StoreService
	search  *usecase.SearchService
	orders  *usecase.OrderService
	ai      *usecase.AIService
	flights *usecase.FlightService

	info   ServiceInfo
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services, info ServiceInfo, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		stores:  services.Stores,
		search:  services.Search,
		orders:  services.Orders,
		ai:      services.AI,
		flights: services.Flights,
		info:    info,
		logger:  logger,
		now:     time.Now,
	}
}

// HealthCheck answers load balancer probes
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// DetailedHealthCheck returns the health status of the API
func (h *Handler) DetailedHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   h.info.Name,
		"version":   h.info.Version,
		"port":      h.info.Port,
		"env":       h.info.Environment,
	})
}

// AdminReset clears every store, tracked order and the AI configuration
func (h *Handler) AdminReset(c *gin.Context) {
	removed := h.stores.DisconnectAll(c.Request.Context())
	h.orders.Reset()
	h.ai.Reset()

	h.logger.Warn("server state reset", zap.Int("stores_removed", removed))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Server reset: all stores cleared, AI disabled",
	})
}

// bindJSON decodes an optional JSON body. An empty body leaves req untouched.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, domain.NewValidationError("", "invalid request body: "+err.Error()))
		return false
	}
	return true
}

// statusFor maps a usecase error to an HTTP status code
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrNoVariants),
		errors.Is(err, domain.ErrNoStoresConnected),
		errors.Is(err, domain.ErrUnsupportedProvider),
		errors.Is(err, domain.ErrAINotConfigured):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreConnectionFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrStoreNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrFlightNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStoreAPIFailure),
		errors.Is(err, domain.ErrAIProviderFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error response
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		c.Error(err) //nolint:errcheck
		message = "internal server error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
