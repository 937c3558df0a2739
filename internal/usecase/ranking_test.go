package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmate/backend/internal/domain"
)

func priced(id, price string) domain.Product {
	return domain.Product{ID: id, Title: "Product " + id, Variants: []domain.Variant{{Price: price, SKU: "SKU-" + id}}}
}

func TestDealScore(t *testing.T) {
	assert.Equal(t, 0.1, DealScore(10))
	assert.Equal(t, 0.0, DealScore(0))
	assert.Equal(t, 0.0, DealScore(-5))
}

func TestBestDeals(t *testing.T) {
	t.Run("zero priced products rank last", func(t *testing.T) {
		products := []domain.Product{priced("zero", "0"), priced("ten", "10"), priced("hundred", "100")}

		got := BestDeals(products, 3)

		require.Len(t, got, 3)
		assert.Equal(t, "ten", got[0].ID)
		assert.Equal(t, "hundred", got[1].ID)
		assert.Equal(t, "zero", got[2].ID)
		assert.Equal(t, 0.1, got[0].DealScore)
		assert.Equal(t, 0.0, got[2].DealScore)
	})

	t.Run("missing and malformed prices score zero", func(t *testing.T) {
		noVariants := domain.Product{ID: "none"}
		products := []domain.Product{noVariants, priced("bad", "abc"), priced("ok", "5")}

		got := BestDeals(products, 10)

		require.Len(t, got, 3)
		assert.Equal(t, "ok", got[0].ID)
		// ties keep input order
		assert.Equal(t, "none", got[1].ID)
		assert.Equal(t, "bad", got[2].ID)
	})

	t.Run("truncates to n", func(t *testing.T) {
		products := []domain.Product{priced("a", "1"), priced("b", "2"), priced("c", "3")}
		assert.Len(t, BestDeals(products, 2), 2)
		assert.Empty(t, BestDeals(products, 0))
	})
}

func TestPriceRange(t *testing.T) {
	products := []domain.Product{priced("p50", "50"), priced("p150", "150"), priced("p300", "300")}

	tests := []struct {
		name     string
		min, max float64
		want     []string
	}{
		{name: "single product in range", min: 100, max: 200, want: []string{"p150"}},
		{name: "bounds are inclusive", min: 50, max: 150, want: []string{"p50", "p150"}},
		{name: "all products", min: 0, max: 1000, want: []string{"p50", "p150", "p300"}},
		{name: "empty range", min: 400, max: 500, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(PriceRange(products, tt.min, tt.max, 50)))
		})
	}
}

func TestPriceRange_SortedAscending(t *testing.T) {
	products := []domain.Product{priced("c", "30"), priced("a", "10"), priced("b", "20"), priced("a2", "10")}

	got := PriceRange(products, 0, 100, 50)

	assert.Equal(t, []string{"a", "a2", "b", "c"}, ids(got))
}

func TestSearchByVendor(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Vendor: "Acme Corp", Variants: []domain.Variant{{Price: "20"}}},
		{ID: "2", Vendor: "Other"},
		{ID: "3", Vendor: "ACME", Variants: []domain.Variant{{Price: "5"}}},
	}

	got := SearchByVendor(products, "acme", 50)

	assert.Equal(t, []string{"3", "1"}, ids(got))
}

func TestGroupByCategory(t *testing.T) {
	t.Run("computes statistics per category", func(t *testing.T) {
		products := []domain.Product{
			{ID: "1", ProductType: "Electronics", Variants: []domain.Variant{{Price: "300"}}},
			{ID: "2", ProductType: "electronics", Variants: []domain.Variant{{Price: "100"}}},
			{ID: "3", ProductType: "Books", Variants: []domain.Variant{{Price: "15"}}},
		}

		got := GroupByCategory(products)

		require.Len(t, got, 2)
		electronics := got[0]
		assert.Equal(t, "electronics", electronics.Category)
		assert.Equal(t, 2, electronics.Count)
		assert.Equal(t, 100.0, electronics.MinPrice)
		assert.Equal(t, 300.0, electronics.MaxPrice)
		assert.Equal(t, 200.0, electronics.AvgPrice)
		require.Len(t, electronics.Products, 2)
		assert.Equal(t, "2", electronics.Products[0].ID)
		assert.Equal(t, "1", electronics.Products[1].ID)

		assert.Equal(t, "books", got[1].Category)
		assert.Equal(t, 1, got[1].Count)
	})

	t.Run("empty input", func(t *testing.T) {
		got := GroupByCategory(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("untyped products share the empty category", func(t *testing.T) {
		got := GroupByCategory([]domain.Product{{ID: "a"}, {ID: "b"}})
		require.Len(t, got, 1)
		assert.Equal(t, "", got[0].Category)
		assert.Equal(t, 2, got[0].Count)
		assert.Equal(t, 0.0, got[0].AvgPrice)
	})
}
