package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/usecase"
)

type aiTestRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"apiKey"`
}

// GetAIConfig returns the AI configuration with keys masked
// GET /api/ai/config
func (h *Handler) GetAIConfig(c *gin.Context) {
	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		domain.AIConfig
	}{true, h.ai.MaskedConfig()})
}

// UpdateAIConfig merges new AI settings into the configuration
// POST /api/ai/config
func (h *Handler) UpdateAIConfig(c *gin.Context) {
	var req domain.AIConfig
	if !bindJSON(c, &req) {
		return
	}

	cfg, err := h.ai.UpdateConfig(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "AI configuration saved successfully",
		"config": gin.H{
			"provider": cfg.Provider,
			"model":    cfg.Model,
		},
	})
}

// AIStatus reports whether AI replies are active
// GET /api/ai/status
func (h *Handler) AIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		usecase.AIStatus
	}{true, h.ai.Status()})
}

// TestAI sends a short prompt to a provider with a candidate key
// POST /api/ai/test
func (h *Handler) TestAI(c *gin.Context) {
	var req aiTestRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.ai.TestProvider(c.Request.Context(), req.Provider, req.Model, req.APIKey)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnsupportedProvider):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": fmt.Sprintf("ספק לא נתמך: %s. ספקים נתמכים: %s",
				req.Provider, strings.Join(domain.SupportedProviders, ", ")),
		})
		return
	case domain.IsValidation(err):
		respondError(c, err)
		return
	default:
		// Provider failures are answered with 400 and the upstream message
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("%s connection failed", req.Provider),
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  req.Provider + " connection successful",
		"model":    req.Model,
		"response": reply,
	})
}
