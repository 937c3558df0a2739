package usecase

import (
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// FilterProducts returns up to limit products whose title, type, vendor, tags
// or description contain term, case-insensitively, in input order.
// An empty or blank term returns the first limit products without scanning.
func FilterProducts(term string, products []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		if len(products) > limit {
			products = products[:limit]
		}
		result := make([]domain.Product, len(products))
		copy(result, products)
		return result
	}

	result := make([]domain.Product, 0, min(limit, len(products)))
	for i := range products {
		if matchesTerm(&products[i], needle) {
			result = append(result, products[i])
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

// matchesTerm checks the five searchable fields against a lower-cased needle
func matchesTerm(p *domain.Product, needle string) bool {
	fields := [...]string{p.Title, p.ProductType, p.Vendor, p.Tags, p.BodyHTML}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
