package domain

// Airport is an airport in the static airport table
type Airport struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Money is an amount with its currency and display form
type Money struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// FlightOffer is a flight in the mock flight dataset
type FlightOffer struct {
	ID              string  `json:"id"`
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flightNumber"`
	Origin          Airport `json:"origin"`
	Destination     Airport `json:"destination"`
	Departure       string  `json:"departure"`
	Arrival         string  `json:"arrival"`
	Duration        string  `json:"duration"`
	Stops           int     `json:"stops"`
	Price           Money   `json:"price"`
	Class           string  `json:"class"`
	Available       bool    `json:"available"`
	BookingURL      string  `json:"bookingUrl"`
	SearchRelevance float64 `json:"searchRelevance,omitempty"`
}

// FlightDetails extends a flight offer with fare conditions
type FlightDetails struct {
	FlightOffer
	Baggage      map[string]string `json:"baggage"`
	Amenities    []string          `json:"amenities"`
	Cancellation string            `json:"cancellation"`
	Aircraft     string            `json:"aircraft"`
}

// FlightSearchParams are the flight search criteria. Zero values take defaults.
type FlightSearchParams struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate,omitempty"`
	Passengers    int      `json:"passengers"`
	Class         string   `json:"class"`
	MaxStops      *int     `json:"maxStops,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
}

// Destination is a popular destination with its lowest known fare
type Destination struct {
	Code     string  `json:"code"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	MinPrice float64 `json:"minPrice"`
}
