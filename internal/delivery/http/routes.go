package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopmate/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/health/detailed", handler.DetailedHealthCheck)

	api := router.Group("/api")
	{
		api.GET("/config", handler.GetConfig)
		api.POST("/connect", handler.ConnectLegacy)
		api.POST("/disconnect", handler.DisconnectAll)
		api.POST("/test-connection", handler.TestConnection)

		stores := api.Group("/stores")
		{
			stores.GET("", handler.ListStores)
			stores.POST("/connect", handler.ConnectStore)
			stores.DELETE("/:id", handler.DisconnectStore)
			stores.GET("/:id/deals", handler.BestDeals)
			stores.GET("/:id/vendor", handler.VendorProducts)
			stores.GET("/:id/price-range", handler.PriceRange)
			stores.GET("/:id/orders", handler.StoreOrders)
		}

		chat := api.Group("/chat")
		{
			chat.POST("/search", handler.ChatSearch)
			chat.POST("/compare", handler.ChatCompare)
			chat.POST("/flights", handler.FlightChat)
		}

		orders := api.Group("/orders")
		{
			orders.POST("/create", handler.CreateOrder)
			orders.POST("/complete/:id", handler.CompleteOrder)
			orders.GET("/:id/status", handler.OrderStatus)
			orders.POST("/:id/pay", handler.PayOrder)
		}

		ai := api.Group("/ai")
		{
			ai.GET("/config", handler.GetAIConfig)
			ai.POST("/config", handler.UpdateAIConfig)
			ai.GET("/status", handler.AIStatus)
			ai.POST("/test", handler.TestAI)
		}

		flights := api.Group("/flights")
		{
			flights.POST("/search", handler.SearchFlights)
			flights.GET("/destinations", handler.PopularDestinations)
			flights.GET("/destinations/:origin", handler.PopularDestinations)
			flights.GET("/airports/search", handler.SearchAirports)
			flights.GET("/:id", handler.FlightDetails)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/reset", handler.AdminReset)
			admin.POST("/reset", handler.AdminReset)
		}
	}

	return router
}
