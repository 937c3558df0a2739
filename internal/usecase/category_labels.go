package usecase

import (
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// defaultCategoryLabel is used when no rule matches
const defaultCategoryLabel = "🛍️ מרקט כללי"

// categoryRule assigns a display label to products whose title contains a keyword
type categoryRule struct {
	label         string
	titleKeywords []string
	typeKeywords  []string
}

// categoryRules are checked in order; the first match wins
var categoryRules = []categoryRule{
	{label: "🖥️ טכנולוגיה ומחשבים", titleKeywords: []string{"laptop", "gaming", "computer", "pc"}},
	{label: "📱 סלולר וטכנולוגיה", titleKeywords: []string{"smartphone", "phone", "mobile"}},
	{
		label:         "👶 בגדי ילדים ותינוקות",
		titleKeywords: []string{"toddler", "children", "baby", "kids", "ילד", "בייבי"},
		typeKeywords:  []string{"clothes"},
	},
	{label: "🏃 ספורט וכושר", titleKeywords: []string{"tennis", "bike", "sport", "fitness"}},
	{label: "📚 ספרים וחינוך", titleKeywords: []string{"encyclopedia", "book", "education"}},
	{label: "🌱 גינה וכלי עבודה", titleKeywords: []string{"garden", "tool", "outdoor"}},
	{label: "🎵 אודיו ובידור", titleKeywords: []string{"headphone", "audio", "speaker"}},
	{label: "🏠 בית ומטבח", titleKeywords: []string{"home", "kitchen", "cookware"}},
	{label: "👕 אופנה ובגדים", titleKeywords: []string{"fashion", "clothing", "shirt", "dress", "pants"}},
	{label: "💄 יופי וקוסמטיקה", titleKeywords: []string{"beauty", "cosmetic", "skincare"}},
	{label: "🚗 רכב ואביזרים", titleKeywords: []string{"car", "automotive", "vehicle"}},
	{label: "🧸 צעצועים ומשחקים", titleKeywords: []string{"toy", "game", "play"}},
	{label: "⚕️ בריאות ותרופות", titleKeywords: []string{"health", "medical", "pharmacy"}},
}

// CategoryLabel returns the display category for a product based on its title and type
func CategoryLabel(p *domain.Product) string {
	title := strings.ToLower(p.Title)
	productType := strings.ToLower(p.ProductType)

	for _, rule := range categoryRules {
		for _, kw := range rule.titleKeywords {
			if strings.Contains(title, kw) {
				return rule.label
			}
		}
		for _, kw := range rule.typeKeywords {
			if strings.Contains(productType, kw) {
				return rule.label
			}
		}
	}
	return defaultCategoryLabel
}
