package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a store catalog product as returned by the Admin API
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html"`
	Handle      string    `json:"handle,omitempty"`
	ProductType string    `json:"product_type"`
	Vendor      string    `json:"vendor"`
	Tags        string    `json:"tags"`
	Status      string    `json:"status,omitempty"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
}

// Variant is a purchasable variant of a product. Price is a decimal string.
type Variant struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id,omitempty"`
	Title             string `json:"title,omitempty"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// Image is a product image
type Image struct {
	ID  string `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// ParsePrice parses a decimal price string. Missing, malformed or out-of-range input yields 0.
func ParsePrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Price returns the parsed price of the first variant, or 0 without variants
func (p *Product) Price() float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	return ParsePrice(p.Variants[0].Price)
}

// RawPrice returns the first variant's price string as transported
func (p *Product) RawPrice() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].Price
}

// SKU returns the first variant's SKU
func (p *Product) SKU() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].SKU
}

// ImageURL returns the first image source, if any
func (p *Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

// SearchResult is a product hit from a multi-store search. Built per request.
type SearchResult struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Vendor    string  `json:"vendor"`
	Type      string  `json:"type"`
	Image     string  `json:"image,omitempty"`
	StoreID   string  `json:"storeId"`
	StoreName string  `json:"storeName"`
	Category  string  `json:"category"`
}

// ProductSummary is the flattened product record used in price comparisons
type ProductSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Vendor string  `json:"vendor"`
	SKU    string  `json:"sku"`
}

// CategoryPriceSummary holds price statistics for one product category
type CategoryPriceSummary struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	MinPrice float64          `json:"minPrice"`
	MaxPrice float64          `json:"maxPrice"`
	AvgPrice float64          `json:"avgPrice"`
	Products []ProductSummary `json:"products"`
}
