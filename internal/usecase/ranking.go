package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// DealProduct is a product with its deal score
type DealProduct struct {
	domain.Product
	DealScore float64 `json:"dealScore"`
}

// DealScore scores cheaper products higher. Free or unpriced products score 0.
func DealScore(price float64) float64 {
	if price > 0 {
		return 1 / price
	}
	return 0
}

// BestDeals returns the top n products by deal score, highest first
func BestDeals(products []domain.Product, n int) []DealProduct {
	scored := make([]DealProduct, len(products))
	for i := range products {
		scored[i] = DealProduct{
			Product:   products[i],
			DealScore: DealScore(products[i].Price()),
		}
	}

	slices.SortStableFunc(scored, func(a, b DealProduct) int {
		return cmp.Compare(b.DealScore, a.DealScore)
	})

	return takeN(scored, n)
}

// SearchByVendor returns up to n products whose vendor contains vendor,
// case-insensitively, cheapest first
func SearchByVendor(products []domain.Product, vendor string, n int) []domain.Product {
	needle := strings.ToLower(vendor)
	matched := make([]domain.Product, 0, len(products))
	for i := range products {
		if strings.Contains(strings.ToLower(products[i].Vendor), needle) {
			matched = append(matched, products[i])
		}
	}
	sortByPrice(matched)
	return takeN(matched, n)
}

// PriceRange returns up to n products priced within [minPrice, maxPrice], cheapest first
func PriceRange(products []domain.Product, minPrice, maxPrice float64, n int) []domain.Product {
	matched := make([]domain.Product, 0, len(products))
	for i := range products {
		price := products[i].Price()
		if price >= minPrice && price <= maxPrice {
			matched = append(matched, products[i])
		}
	}
	sortByPrice(matched)
	return takeN(matched, n)
}

// GroupByCategory groups products by lower-cased product type and computes
// price statistics per group. Groups appear in order of first occurrence.
func GroupByCategory(products []domain.Product) []domain.CategoryPriceSummary {
	index := make(map[string]int)
	var groups []domain.CategoryPriceSummary

	for i := range products {
		p := &products[i]
		key := strings.ToLower(p.ProductType)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, domain.CategoryPriceSummary{Category: key})
		}
		groups[pos].Products = append(groups[pos].Products, domain.ProductSummary{
			ID:     p.ID,
			Title:  p.Title,
			Price:  p.Price(),
			Vendor: p.Vendor,
			SKU:    p.SKU(),
		})
	}

	for i := range groups {
		g := &groups[i]
		g.Count = len(g.Products)
		g.MinPrice = g.Products[0].Price
		g.MaxPrice = g.Products[0].Price
		var sum float64
		for _, s := range g.Products {
			g.MinPrice = min(g.MinPrice, s.Price)
			g.MaxPrice = max(g.MaxPrice, s.Price)
			sum += s.Price
		}
		g.AvgPrice = sum / float64(g.Count)

		slices.SortStableFunc(g.Products, func(a, b domain.ProductSummary) int {
			return cmp.Compare(a.Price, b.Price)
		})
	}

	if groups == nil {
		return []domain.CategoryPriceSummary{}
	}
	return groups
}

// sortByPrice sorts products ascending by parsed price, keeping ties in order
func sortByPrice(products []domain.Product) {
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		return cmp.Compare(a.Price(), b.Price())
	})
}

func takeN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		items = items[:n]
	}
	return items
}
