package usecase

import (
	"strings"

	"go.uber.org/zap"
)

// MaxSearchTerms caps the number of terms a query expands into
const MaxSearchTerms = 8

// fuzzyPrefixLength is the number of leading key characters used by the fuzzy pass
const fuzzyPrefixLength = 3

// minExpansionWordLength is the exclusive lower bound on split expansion words
const minExpansionWordLength = 2

// keywordExpansion maps a Hebrew keyword to its English search terms
type keywordExpansion struct {
	keyword   string
	expansion string
}

// hebrewKeywords is iterated in declaration order by both expansion passes
var hebrewKeywords = []keywordExpansion{
	// Clothing and kids
	{"בגדי ילדים", "children baby kids clothes clothing toddler"},
	{"ילדים", "children baby kids toddler youth"},
	{"תינוק", "baby toddler infant"},
	{"בגדים", "clothes clothing shirt pants dress"},
	{"חולצה", "shirt t-shirt blouse top"},
	{"חולצות", "shirts t-shirts blouses tops"},
	{"מכנס", "pants trousers jeans"},
	{"מכנסיים", "pants trousers jeans"},
	{"נעליים", "shoes sneakers boots"},
	{"שמלה", "dress"},
	{"חצאית", "skirt"},
	{"מעיל", "jacket coat"},
	{"סוודר", "sweater hoodie"},

	// Technology
	{"מחשב", "computer laptop desktop PC"},
	{"לפטופ", "laptop computer notebook"},
	{"טלפון", "phone smartphone mobile cellphone"},
	{"סמארטפון", "smartphone phone mobile"},
	{"אוזניות", "headphones earphones headset"},
	{"טלוויזיה", "tv television screen monitor"},
	{"מקלדת", "keyboard"},
	{"עכבר", "mouse"},
	{"מסך", "screen monitor display"},
	{"מצלמה", "camera"},

	// Automotive
	{"רכב", "car automotive vehicle"},
	{"מכונית", "car vehicle auto"},
	{"מוצרי רכב", "car automotive vehicle parts"},
	{"אופניים", "bicycle bike cycling"},
	{"גלגלים", "wheels tires"},

	// Home and garden
	{"כלי מטבח", "kitchen utensils cookware"},
	{"מטבח", "kitchen cooking"},
	{"סיר", "pot pan cookware"},
	{"כוס", "cup mug glass"},
	{"צלחת", "plate dish"},
	{"גינה", "garden gardening outdoor"},
	{"צמחים", "plants flowers gardening"},
	{"כלי גינה", "garden tools gardening equipment"},

	// Books and education
	{"ספרים", "book books encyclopedia education"},
	{"ספר", "book"},
	{"אנציקלופדיה", "encyclopedia books education"},
	{"משחקים", "games toys play"},
	{"צעצועים", "toys games children kids"},

	// Sport
	{"ספורט", "sport sports fitness exercise"},
	{"כושר", "fitness sports exercise gym"},
	{"כדור", "ball sports"},
	{"טניס", "tennis sports"},
	{"ריצה", "running sports fitness"},

	// Beauty and health
	{"קוסמטיקה", "cosmetics beauty makeup"},
	{"יופי", "beauty cosmetics skincare"},
	{"בריאות", "health wellness medical"},
	{"תרופות", "medicine health pharmacy"},
}

// TermExpander turns a free-text (possibly Hebrew) query into search terms
type TermExpander struct {
	logger             *zap.Logger
	enableDebugLogging bool
}

// NewTermExpander creates a new term expander
func NewTermExpander(logger *zap.Logger, enableDebugLogging bool) *TermExpander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermExpander{
		logger:             logger,
		enableDebugLogging: enableDebugLogging,
	}
}

// Expand returns 1 to MaxSearchTerms search terms for query.
// The first term is always the query itself, unchanged.
func (e *TermExpander) Expand(query string) []string {
	terms := []string{query}
	queryLower := strings.ToLower(query)

	// Exact keyword pass: the whole expansion, then its individual words
	for _, kw := range hebrewKeywords {
		if !strings.Contains(queryLower, strings.ToLower(kw.keyword)) {
			continue
		}
		terms = append(terms, kw.expansion)
		for _, word := range strings.Split(kw.expansion, " ") {
			if len([]rune(word)) > minExpansionWordLength && !containsTerm(terms, word) {
				terms = append(terms, word)
			}
		}
	}

	// Fuzzy pass on the keyword prefix
	for _, kw := range hebrewKeywords {
		if strings.Contains(queryLower, keywordPrefix(kw.keyword)) && !containsTerm(terms, kw.expansion) {
			terms = append(terms, kw.expansion)
		}
	}

	if len(terms) > MaxSearchTerms {
		terms = terms[:MaxSearchTerms]
	}

	if e.enableDebugLogging {
		e.logger.Debug("expanded search query",
			zap.String("query", query),
			zap.Strings("terms", terms),
		)
	}

	return terms
}

// keywordPrefix returns the first fuzzyPrefixLength characters of keyword
func keywordPrefix(keyword string) string {
	runes := []rune(keyword)
	if len(runes) > fuzzyPrefixLength {
		runes = runes[:fuzzyPrefixLength]
	}
	return string(runes)
}

func containsTerm(terms []string, term string) bool {
	for _, t := range terms {
		if t == term {
			return true
		}
	}
	return false
}
