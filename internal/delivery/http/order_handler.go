package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/backend/internal/domain"
)

type payRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CreateOrder places an order for the first variant of a product
// POST /api/orders/create
func (h *Handler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"orderId":       order.OrderID,
		"orderNumber":   order.OrderNumber,
		"trackingId":    order.TrackingID,
		"total":         order.Total,
		"currency":      order.Currency,
		"customerEmail": order.Customer.Email,
		"message":       "Order created successfully",
	})
}

// OrderStatus returns a tracked order
// GET /api/orders/:id/status
func (h *Handler) OrderStatus(c *gin.Context) {
	order, err := h.orders.Status(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// PayOrder marks a tracked order as paid
// POST /api/orders/:id/pay
func (h *Handler) PayOrder(c *gin.Context) {
	var req payRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Pay(c.Param("id"), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment completed successfully!",
		"order":   order,
	})
}

// CompleteOrder marks a pending order as paid from the checkout page
// POST /api/orders/complete/:id
func (h *Handler) CompleteOrder(c *gin.Context) {
	if _, err := h.orders.Complete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Payment completed successfully!",
		"redirect": "/confirmation",
	})
}
