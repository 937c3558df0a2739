package flights

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

const (
	// DefaultOrigin is used when a search names no origin
	DefaultOrigin = "TLV"
	// DefaultClass is used when a search names no travel class
	DefaultClass = "Economy"
	// DefaultMaxStops is used when a search sets no stop limit
	DefaultMaxStops = 2

	maxRelevance = 2.0
)

var benGurion = domain.Airport{Code: "TLV", Name: "בן גוריון", City: "תל אביב"}

// airports is the static airport table in display order
var airports = []domain.Airport{
	{Code: "TLV", Name: "בן גוריון", City: "תל אביב", Country: "ישראל"},
	{Code: "VDA", Name: "עובדה", City: "אילת", Country: "ישראל"},
	{Code: "JFK", Name: "John F. Kennedy", City: "ניו יורק", Country: "ארה״ב"},
	{Code: "LAX", Name: "Los Angeles International", City: "לוס אנג'לס", Country: "ארה״ב"},
	{Code: "LHR", Name: "Heathrow", City: "לונדון", Country: "בריטניה"},
	{Code: "CDG", Name: "Charles de Gaulle", City: "פריז", Country: "צרפת"},
	{Code: "FRA", Name: "Frankfurt", City: "פרנקפורט", Country: "גרמניה"},
	{Code: "IST", Name: "Istanbul Airport", City: "איסטנבול", Country: "טורקיה"},
	{Code: "DXB", Name: "Dubai International", City: "דובאי", Country: "איחוד האמירויות"},
	{Code: "FCO", Name: "Leonardo da Vinci", City: "רומא", Country: "איטליה"},
}

var offers = []domain.FlightOffer{
	{
		ID:           "FL001",
		Airline:      "El Al",
		FlightNumber: "LY315",
		Origin:       benGurion,
		Destination:  domain.Airport{Code: "JFK", Name: "John F. Kennedy", City: "ניו יורק"},
		Departure:    "2025-01-15T10:30:00Z",
		Arrival:      "2025-01-15T16:45:00Z",
		Duration:     "11h 15m",
		Price:        domain.Money{Amount: 2850, Currency: "ILS", Formatted: "₪2,850"},
		Class:        DefaultClass,
		Available:    true,
		BookingURL:   "https://booking.elal.com/flight/FL001",
	},
	{
		ID:           "FL002",
		Airline:      "Lufthansa",
		FlightNumber: "LH686",
		Origin:       benGurion,
		Destination:  domain.Airport{Code: "FRA", Name: "Frankfurt", City: "פרנקפורט"},
		Departure:    "2025-01-15T14:20:00Z",
		Arrival:      "2025-01-15T18:30:00Z",
		Duration:     "5h 10m",
		Price:        domain.Money{Amount: 1650, Currency: "ILS", Formatted: "₪1,650"},
		Class:        DefaultClass,
		Available:    true,
		BookingURL:   "https://booking.lufthansa.com/flight/FL002",
	},
	{
		ID:           "FL003",
		Airline:      "Turkish Airlines",
		FlightNumber: "TK864",
		Origin:       benGurion,
		Destination:  domain.Airport{Code: "IST", Name: "Istanbul Airport", City: "איסטנבול"},
		Departure:    "2025-01-15T23:55:00Z",
		Arrival:      "2025-01-16T02:45:00Z",
		Duration:     "3h 50m",
		Price:        domain.Money{Amount: 980, Currency: "ILS", Formatted: "₪980"},
		Class:        DefaultClass,
		Available:    true,
		BookingURL:   "https://booking.turkishairlines.com/flight/FL003",
	},
	{
		ID:           "FL004",
		Airline:      "British Airways",
		FlightNumber: "BA165",
		Origin:       benGurion,
		Destination:  domain.Airport{Code: "LHR", Name: "Heathrow", City: "לונדון"},
		Departure:    "2025-01-15T08:15:00Z",
		Arrival:      "2025-01-15T12:20:00Z",
		Duration:     "5h 05m",
		Price:        domain.Money{Amount: 2200, Currency: "ILS", Formatted: "₪2,200"},
		Class:        DefaultClass,
		Available:    true,
		BookingURL:   "https://booking.ba.com/flight/FL004",
	},
	{
		ID:           "FL005",
		Airline:      "Emirates",
		FlightNumber: "EK927",
		Origin:       benGurion,
		Destination:  domain.Airport{Code: "DXB", Name: "Dubai International", City: "דובאי"},
		Departure:    "2025-01-15T16:40:00Z",
		Arrival:      "2025-01-15T22:15:00Z",
		Duration:     "4h 35m",
		Price:        domain.Money{Amount: 1800, Currency: "ILS", Formatted: "₪1,800"},
		Class:        DefaultClass,
		Available:    true,
		BookingURL:   "https://booking.emirates.com/flight/FL005",
	},
}

var popularDestinations = []domain.Destination{
	{Code: "JFK", City: "ניו יורק", Country: "ארה״ב", MinPrice: 2800},
	{Code: "LHR", City: "לונדון", Country: "בריטניה", MinPrice: 2200},
	{Code: "CDG", City: "פריז", Country: "צרפת", MinPrice: 1900},
	{Code: "FRA", City: "פרנקפורט", Country: "גרמניה", MinPrice: 1650},
	{Code: "IST", City: "איסטנבול", Country: "טורקיה", MinPrice: 980},
	{Code: "DXB", City: "דובאי", Country: "איחוד האמירויות", MinPrice: 1800},
	{Code: "FCO", City: "רומא", Country: "איטליה", MinPrice: 1750},
	{Code: "LAX", City: "לוס אנג'לס", Country: "ארה״ב", MinPrice: 3200},
}

var popularAirlines = map[string]bool{
	"El Al":           true,
	"Lufthansa":       true,
	"Emirates":        true,
	"British Airways": true,
}

// Catalog is an in-memory flight provider over a fixed dataset
type Catalog struct{}

// NewCatalog creates the static flight catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Search returns offers matching params, cheapest first, each with a relevance score
func (c *Catalog) Search(ctx context.Context, params domain.FlightSearchParams) ([]domain.FlightOffer, error) {
	if strings.TrimSpace(params.Destination) == "" {
		return nil, domain.NewValidationError("destination", "destination is required")
	}
	if strings.TrimSpace(params.DepartureDate) == "" {
		return nil, domain.NewValidationError("departureDate", "departure date is required")
	}

	origin := params.Origin
	if origin == "" {
		origin = DefaultOrigin
	}
	class := params.Class
	if class == "" {
		class = DefaultClass
	}
	maxStops := DefaultMaxStops
	if params.MaxStops != nil {
		maxStops = *params.MaxStops
	}

	result := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if !matchesDestination(offer.Destination, params.Destination) {
			continue
		}
		if offer.Origin.Code != strings.ToUpper(origin) {
			continue
		}
		if offer.Class != class {
			continue
		}
		if params.MaxPrice != nil && *params.MaxPrice > 0 && offer.Price.Amount > *params.MaxPrice {
			continue
		}
		if offer.Stops > maxStops {
			continue
		}
		offer.SearchRelevance = relevance(offer)
		result = append(result, offer)
	}

	slices.SortStableFunc(result, func(a, b domain.FlightOffer) int {
		return cmp.Compare(a.Price.Amount, b.Price.Amount)
	})
	return result, nil
}

// Details returns an offer with its fare conditions
func (c *Catalog) Details(ctx context.Context, flightID string) (*domain.FlightDetails, error) {
	for _, offer := range offers {
		if offer.ID != flightID {
			continue
		}
		return &domain.FlightDetails{
			FlightOffer: offer,
			Baggage: map[string]string{
				"carryOn": "8kg חינם",
				"checked": "תיק 23kg - ₪150",
			},
			Amenities:    []string{"WiFi", "ארוחה", "בידור"},
			Cancellation: "ביטול בתשלום עד 24 שעות לפני הטיסה",
			Aircraft:     "Boeing 737-800",
		}, nil
	}
	return nil, domain.ErrFlightNotFound
}

// PopularDestinations returns the popular destinations list. The list is the same for every origin.
func (c *Catalog) PopularDestinations(ctx context.Context, origin string) ([]domain.Destination, error) {
	return slices.Clone(popularDestinations), nil
}

// SearchAirports matches query against airport code, name and city
func (c *Catalog) SearchAirports(ctx context.Context, query string) ([]domain.Airport, error) {
	needle := strings.ToLower(query)
	result := make([]domain.Airport, 0)
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.Code), needle) ||
			strings.Contains(strings.ToLower(a.Name), needle) ||
			strings.Contains(strings.ToLower(a.City), needle) {
			result = append(result, a)
		}
	}
	return result, nil
}

// Airport looks up an airport by code
func Airport(code string) (domain.Airport, bool) {
	for _, a := range airports {
		if a.Code == strings.ToUpper(code) {
			return a, true
		}
	}
	return domain.Airport{}, false
}

func matchesDestination(a domain.Airport, destination string) bool {
	return a.Code == strings.ToUpper(destination) ||
		strings.Contains(a.City, destination) ||
		strings.Contains(strings.ToLower(a.Name), strings.ToLower(destination))
}

// relevance boosts direct, cheap and well-known flights, capped at maxRelevance
func relevance(offer domain.FlightOffer) float64 {
	score := 1.0
	if offer.Stops == 0 {
		score += 0.3
	}
	if offer.Price.Amount < 2000 {
		score += 0.2
	}
	if popularAirlines[offer.Airline] {
		score += 0.1
	}
	return min(score, maxRelevance)
}
