package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/usecase"
)

type flightChatRequest struct {
	Query string `json:"query"`
}

// SearchFlights runs a structured flight search
// POST /api/flights/search
func (h *Handler) SearchFlights(c *gin.Context) {
	var params domain.FlightSearchParams
	if !bindJSON(c, &params) {
		return
	}

	result, err := h.flights.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*usecase.FlightSearchResult
	}{true, result})
}

// FlightDetails returns one flight with its fare conditions
// GET /api/flights/:id
func (h *Handler) FlightDetails(c *gin.Context) {
	flight, err := h.flights.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"flight":  flight,
	})
}

// PopularDestinations lists popular destinations from an origin
// GET /api/flights/destinations[/:origin]?origin=&limit=
func (h *Handler) PopularDestinations(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	origin := c.Param("origin")
	if origin == "" {
		origin = c.Query("origin")
	}
	origin = strings.ToUpper(strings.TrimSpace(origin))

	destinations, err := h.flights.Destinations(c.Request.Context(), origin, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	if origin == "" {
		origin = usecase.DefaultFlightOrigin
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"origin":       origin,
		"destinations": destinations,
	})
}

// SearchAirports finds airports by code, name or city
// GET /api/flights/airports/search?q=
func (h *Handler) SearchAirports(c *gin.Context) {
	query := c.Query("q")
	airports, err := h.flights.Airports(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"query":    query,
		"airports": airports,
	})
}

// FlightChat answers a free-text flight request
// POST /api/chat/flights
func (h *Handler) FlightChat(c *gin.Context) {
	var req flightChatRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.flights.Chat(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*usecase.FlightChatResponse
	}{true, resp})
}
