package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
)

// DefaultFlightOrigin is the departure airport when none is given
const DefaultFlightOrigin = "TLV"

const (
	defaultDestinationsLimit = 10
	chatDestinationsLimit    = 6
	dateLayout               = "2006-01-02"

	flightHelpIntro   = "🤖 **AI מנתח את הבקשה שלכם...**\n\nהאמי הבין שאתם רוצים לחפש טיסות, אבל לא זיהה יעד ספציפי.\n\n✈️ **יעדים פופולריים מתל אביב:**"
	flightHelpMessage = "💡 **עצות לחיפוש טוב יותר:**\nכתבו למשל: \"טיסה לניו יורק מחר\" או \"רוצה לטוס ללונדון עם 2 נוסעים במחלקת עסקים\""
)

// cityCode maps a city mention in a chat query to an airport code
type cityCode struct {
	mention string
	code    string
}

// flightDestinations is checked in order; the first mention found wins
var flightDestinations = []cityCode{
	{"ניו יורק", "JFK"}, {"new york", "JFK"}, {"ny", "JFK"},
	{"לונדון", "LHR"}, {"london", "LHR"},
	{"פריז", "CDG"}, {"paris", "CDG"},
	{"רומא", "FCO"}, {"rome", "FCO"},
	{"איסטנבול", "IST"}, {"istanbul", "IST"},
	{"דובאי", "DXB"}, {"dubai", "DXB"},
	{"פרנקפורט", "FRA"}, {"frankfurt", "FRA"},
	{"לוס אנג'לס", "LAX"}, {"los angeles", "LAX"}, {"la", "LAX"},
}

var destinationNames = map[string]string{
	"JFK": "ניו יורק",
	"LHR": "לונדון",
	"CDG": "פריז",
	"FCO": "רומא",
	"IST": "איסטנבול",
	"DXB": "דובאי",
	"FRA": "פרנקפורט",
	"LAX": "לוס אנג'לס",
}

var passengersPattern = regexp.MustCompile(`(?i)(\d+)\s*(נוסעים|passengers|people)`)

// FlightAdvisor writes the assistant's reply for a set of flight offers
type FlightAdvisor interface {
	FlightAdvice(ctx context.Context, query string, flights []domain.FlightOffer, params domain.FlightSearchParams) string
}

// FlightSearchResult is the result of a structured flight search
type FlightSearchResult struct {
	SearchID     string                    `json:"searchId"`
	SearchParams domain.FlightSearchParams `json:"searchParams"`
	TotalFlights int                       `json:"totalFlights"`
	Flights      []domain.FlightOffer      `json:"flights"`
	Timestamp    time.Time                 `json:"timestamp"`
}

// FlightChatResponse is the reply to a free-text flight query
type FlightChatResponse struct {
	AIResponse          string                     `json:"aiResponse"`
	Summary             string                     `json:"summary,omitempty"`
	Flights             []domain.FlightOffer       `json:"flights"`
	TotalFlights        int                        `json:"totalFlights"`
	SearchParams        *domain.FlightSearchParams `json:"searchParams,omitempty"`
	PopularDestinations []domain.Destination       `json:"popularDestinations,omitempty"`
	HelpMessage         string                     `json:"helpMessage,omitempty"`
}

// FlightService answers flight searches against a flight provider
type FlightService struct {
	provider domain.FlightProvider
	advisor  FlightAdvisor
	logger   *zap.Logger
	now      func() time.Time
}

// NewFlightService creates a flight service. advisor may be nil, in which case replies use demo text.
func NewFlightService(provider domain.FlightProvider, advisor FlightAdvisor, logger *zap.Logger) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlightService{
		provider: provider,
		advisor:  advisor,
		logger:   logger,
		now:      time.Now,
	}
}

// Search runs a structured flight search
func (s *FlightService) Search(ctx context.Context, params domain.FlightSearchParams) (*FlightSearchResult, error) {
	flights, err := s.provider.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	s.logger.Info("flight search completed",
		zap.String("origin", params.Origin),
		zap.String("destination", params.Destination),
		zap.String("departure_date", params.DepartureDate),
		zap.Int("results", len(flights)),
	)

	return &FlightSearchResult{
		SearchID:     "search_" + uuid.NewString(),
		SearchParams: params,
		TotalFlights: len(flights),
		Flights:      flights,
		Timestamp:    s.now().UTC(),
	}, nil
}

// Details returns a single flight with its fare conditions
func (s *FlightService) Details(ctx context.Context, flightID string) (*domain.FlightDetails, error) {
	return s.provider.Details(ctx, flightID)
}

// Destinations returns up to limit popular destinations from origin
func (s *FlightService) Destinations(ctx context.Context, origin string, limit int) ([]domain.Destination, error) {
	if origin == "" {
		origin = DefaultFlightOrigin
	}
	if limit <= 0 {
		limit = defaultDestinationsLimit
	}
	destinations, err := s.provider.PopularDestinations(ctx, origin)
	if err != nil {
		return nil, err
	}
	return takeN(destinations, limit), nil
}

// Airports returns the airports matching query
func (s *FlightService) Airports(ctx context.Context, query string) ([]domain.Airport, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("q", `query parameter "q" is required`)
	}
	return s.provider.SearchAirports(ctx, strings.TrimSpace(query))
}

// Chat parses a free-text flight request, searches and summarizes the offers.
// Without a recognizable destination it suggests popular destinations instead.
func (s *FlightService) Chat(ctx context.Context, query string) (*FlightChatResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query", "query is required")
	}

	params, ok := ParseFlightQuery(query, s.now())
	if !ok {
		destinations, err := s.Destinations(ctx, DefaultFlightOrigin, chatDestinationsLimit)
		if err != nil {
			return nil, err
		}
		return &FlightChatResponse{
			AIResponse:          flightHelpIntro,
			Flights:             []domain.FlightOffer{},
			PopularDestinations: destinations,
			HelpMessage:         flightHelpMessage,
		}, nil
	}

	flights, err := s.provider.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &FlightChatResponse{
		AIResponse:   s.advice(ctx, query, flights, params),
		Summary:      flightSummary(params, len(flights)),
		Flights:      flights,
		TotalFlights: len(flights),
		SearchParams: &params,
	}, nil
}

func (s *FlightService) advice(ctx context.Context, query string, flights []domain.FlightOffer, params domain.FlightSearchParams) string {
	if s.advisor == nil {
		return DemoFlightResponse(flights, params)
	}
	return s.advisor.FlightAdvice(ctx, query, flights, params)
}

// ParseFlightQuery extracts destination, date, passengers and class from a free-text query.
// It reports false when no known destination is mentioned.
func ParseFlightQuery(query string, now time.Time) (domain.FlightSearchParams, bool) {
	lower := strings.ToLower(query)

	destination := ""
	for _, d := range flightDestinations {
		if strings.Contains(lower, d.mention) {
			destination = d.code
			break
		}
	}
	if destination == "" {
		return domain.FlightSearchParams{}, false
	}

	departure := now.UTC().AddDate(0, 0, 1)
	if strings.Contains(lower, "עוד שבוע") || strings.Contains(lower, "next week") {
		departure = now.UTC().AddDate(0, 0, 7)
	}

	passengers := 1
	if m := passengersPattern.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			passengers = n
		}
	}

	class := "Economy"
	switch {
	case strings.Contains(lower, "עסקים") || strings.Contains(lower, "business"):
		class = "Business"
	case strings.Contains(lower, "ראשונה") || strings.Contains(lower, "first class"):
		class = "First"
	}

	return domain.FlightSearchParams{
		Origin:        DefaultFlightOrigin,
		Destination:   destination,
		DepartureDate: departure.Format(dateLayout),
		Passengers:    passengers,
		Class:         class,
	}, true
}

// DestinationName returns the Hebrew city name for an airport code, or the code itself
func DestinationName(code string) string {
	if name, ok := destinationNames[code]; ok {
		return name
	}
	return code
}

// flightSummary restates what was understood from the query
func flightSummary(params domain.FlightSearchParams, found int) string {
	city := DestinationName(params.Destination)
	if found == 0 {
		return fmt.Sprintf("🤔 לא מצאתי טיסות ל%s בתאריך %s.\n\nנסו:\n• תאריך אחר\n• יעד אחר\n• פחות נוסעים",
			city, params.DepartureDate)
	}

	class := params.Class
	if class == "Economy" {
		class = "תייר"
	}
	return fmt.Sprintf("🛫 מצאתי עבורכם %d טיסות ל%s!\n\n• יעד: %s\n• תאריך: %s\n• נוסעים: %d\n• מחלקה: %s",
		found, city, city, params.DepartureDate, params.Passengers, class)
}
