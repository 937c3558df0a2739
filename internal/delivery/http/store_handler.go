package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
)

// legacyConnectRequest is the body of the legacy connect form
type legacyConnectRequest struct {
	StoreURL    string `json:"storeUrl"`
	AccessToken string `json:"accessToken"`
}

// ListStores returns the connected stores
// GET /api/stores
func (h *Handler) ListStores(c *gin.Context) {
	stores := h.stores.List()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"stores":      stores,
		"totalStores": len(stores),
	})
}

// ConnectStore tests credentials and registers a store
// POST /api/stores/connect
func (h *Handler) ConnectStore(c *gin.Context) {
	var req domain.ConnectRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.stores.Connect(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"storeId": store.ID,
		"message": "Store connected successfully",
		"stores":  h.stores.List(),
	})
}

// ConnectLegacy registers a store from URL and token only
// POST /api/connect
func (h *Handler) ConnectLegacy(c *gin.Context) {
	var req legacyConnectRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.stores.ConnectLegacy(c.Request.Context(), req.StoreURL, req.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connected successfully",
		"storeId": store.ID,
	})
}

// DisconnectStore removes one store
// DELETE /api/stores/:id
func (h *Handler) DisconnectStore(c *gin.Context) {
	storeID := c.Param("id")
	if err := h.stores.Disconnect(c.Request.Context(), storeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Store disconnected",
		"storeId": storeID,
	})
}

// DisconnectAll removes every store
// POST /api/disconnect
func (h *Handler) DisconnectAll(c *gin.Context) {
	removed := h.stores.DisconnectAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "All stores disconnected",
		"disconnected": removed,
	})
}

// TestConnection lists one product from the first connected store
// POST /api/test-connection
func (h *Handler) TestConnection(c *gin.Context) {
	count, err := h.stores.TestConnection(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Connection successful",
		"productCount": count,
	})
}

// GetConfig reports the connection state
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	var lastConnected interface{}
	if last := h.stores.LastConnected(); last != nil {
		lastConnected = last.CreatedAt
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"isConnected":   h.stores.Count() > 0,
		"totalStores":   h.stores.Count(),
		"lastConnected": lastConnected,
	})
}

// StoreOrders lists a store's recent orders
// GET /api/stores/:id/orders?limit=&status=
func (h *Handler) StoreOrders(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	orders, err := h.orders.ListStoreOrders(c.Request.Context(), c.Param("id"), limit, strings.TrimSpace(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Debug("listed store orders", zap.String("store_id", c.Param("id")), zap.Int("count", len(orders)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"storeId": c.Param("id"),
		"orders":  orders,
	})
}
