package shopify

import (
	"strconv"

	"github.com/shopmate/backend/internal/domain"
)

// MapProduct converts an Admin API product to the domain Product model
func MapProduct(p *apiProduct) domain.Product {
	product := domain.Product{
		ID:          string(p.ID),
		Title:       p.Title,
		BodyHTML:    string(p.BodyHTML),
		Handle:      p.Handle,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Tags:        string(p.Tags),
		Status:      p.Status,
		Variants:    make([]domain.Variant, 0, len(p.Variants)),
		Images:      make([]domain.Image, 0, len(p.Images)),
	}

	for _, v := range p.Variants {
		product.Variants = append(product.Variants, domain.Variant{
			ID:                string(v.ID),
			ProductID:         string(v.ProductID),
			Title:             v.Title,
			Price:             string(v.Price),
			SKU:               string(v.SKU),
			InventoryQuantity: v.InventoryQuantity,
		})
	}

	for _, img := range p.Images {
		product.Images = append(product.Images, domain.Image{
			ID:  string(img.ID),
			Src: img.Src,
			Alt: string(img.Alt),
		})
	}

	return product
}

// MapProducts converts a page of Admin API products, keeping their order
func MapProducts(products []apiProduct) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for i := range products {
		result = append(result, MapProduct(&products[i]))
	}
	return result
}

// MapOrder converts an Admin API order to the domain Order model
func MapOrder(o *apiOrder) domain.Order {
	return domain.Order{
		ID:                string(o.ID),
		OrderNumber:       string(o.OrderNumber),
		Name:              o.Name,
		Email:             string(o.Email),
		CreatedAt:         o.CreatedAt,
		TotalPrice:        string(o.TotalPrice),
		SubtotalPrice:     string(o.SubtotalPrice),
		TotalTax:          string(o.TotalTax),
		Currency:          o.Currency,
		FinancialStatus:   string(o.FinancialStatus),
		FulfillmentStatus: string(o.FulfillmentStatus),
	}
}

// buildOrderRequest converts domain order input to the Admin API create-order body.
// The shipping address doubles as the billing address.
func buildOrderRequest(items []domain.LineItem, customer domain.Customer, address domain.ShippingAddress) createOrderRequest {
	lineItems := make([]newLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, newLineItem{
			VariantID: variantIDValue(item.VariantID),
			Quantity:  item.Quantity,
		})
	}

	addr := newAddress{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Address1:  address.Address1,
		Address2:  address.Address2,
		City:      address.City,
		Province:  address.Province,
		Country:   address.Country,
		Zip:       address.Zip,
		Phone:     customer.Phone,
	}

	return createOrderRequest{
		Order: newOrder{
			LineItems: lineItems,
			Customer: newCustomer{
				Email:            customer.Email,
				FirstName:        customer.FirstName,
				LastName:         customer.LastName,
				Phone:            customer.Phone,
				AcceptsMarketing: customer.AcceptsMarketing,
			},
			Email:           customer.Email,
			ShippingAddress: addr,
			BillingAddress:  addr,
		},
	}
}

// variantIDValue sends numeric IDs as JSON numbers and anything else as a string
func variantIDValue(id string) interface{} {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
