package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/usecase"
)

type searchRequest struct {
	Query   string `json:"query"`
	StoreID string `json:"storeId"`
}

type compareRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// ChatSearch answers a shopper query across the connected stores
// POST /api/chat/search
func (h *Handler) ChatSearch(c *gin.Context) {
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.search.Search(c.Request.Context(), req.Query, strings.TrimSpace(req.StoreID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*usecase.SearchResponse
	}{true, resp})
}

// ChatCompare summarizes prices per category for each store
// POST /api/chat/compare
func (h *Handler) ChatCompare(c *gin.Context) {
	var req compareRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.search.Compare(c.Request.Context(), req.SearchTerm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"searchTerm":  resp.SearchTerm,
		"totalStores": resp.TotalStores,
		"comparison":  resp.Stores,
	})
}

// BestDeals returns a store's cheapest products by deal score
// GET /api/stores/:id/deals?limit=
func (h *Handler) BestDeals(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	deals, err := h.search.BestDeals(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"storeId":  c.Param("id"),
		"products": deals,
	})
}

// VendorProducts returns a store's products from a vendor
// GET /api/stores/:id/vendor?vendor=&limit=
func (h *Handler) VendorProducts(c *gin.Context) {
	vendor := strings.TrimSpace(c.Query("vendor"))
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	products, err := h.search.Vendor(c.Request.Context(), c.Param("id"), vendor, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"storeId":  c.Param("id"),
		"vendor":   vendor,
		"products": products,
	})
}

// PriceRange returns a store's products within a price range
// GET /api/stores/:id/price-range?min=&max=&limit=
func (h *Handler) PriceRange(c *gin.Context) {
	minPrice, ok := queryFloat(c, "min")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "max")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	products, err := h.search.PriceRange(c.Request.Context(), c.Param("id"), minPrice, maxPrice, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"storeId":  c.Param("id"),
		"min":      minPrice,
		"max":      maxPrice,
		"products": products,
	})
}

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, domain.NewValidationError(name, "must be an integer"))
		return 0, false
	}
	return v, true
}

// queryFloat reads a required numeric query parameter
func queryFloat(c *gin.Context, name string) (float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		respondError(c, domain.NewValidationError(name, "is required"))
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		respondError(c, domain.NewValidationError(name, "must be a number"))
		return 0, false
	}
	return v, true
}
