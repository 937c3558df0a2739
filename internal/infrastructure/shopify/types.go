package shopify

import (
	"bytes"
	"encoding/json"
)

// flexString decodes a JSON string, number or null into its textual form.
// The Admin API sends IDs as numbers and prices as strings; mocks are not always consistent.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type productResponse struct {
	Product *apiProduct `json:"product"`
}

type productsResponse struct {
	Products []apiProduct `json:"products"`
}

type apiProduct struct {
	ID          flexString   `json:"id"`
	Title       string       `json:"title"`
	BodyHTML    flexString   `json:"body_html"`
	Handle      string       `json:"handle"`
	ProductType string       `json:"product_type"`
	Vendor      string       `json:"vendor"`
	Tags        flexString   `json:"tags"`
	Status      string       `json:"status"`
	Variants    []apiVariant `json:"variants"`
	Images      []apiImage   `json:"images"`
}

type apiVariant struct {
	ID                flexString `json:"id"`
	ProductID         flexString `json:"product_id"`
	Title             string     `json:"title"`
	Price             flexString `json:"price"`
	SKU               flexString `json:"sku"`
	InventoryQuantity int        `json:"inventory_quantity"`
}

type apiImage struct {
	ID  flexString `json:"id"`
	Src string     `json:"src"`
	Alt flexString `json:"alt"`
}

type orderResponse struct {
	Order *apiOrder `json:"order"`
}

type ordersResponse struct {
	Orders []apiOrder `json:"orders"`
}

type apiOrder struct {
	ID                flexString `json:"id"`
	OrderNumber       flexString `json:"order_number"`
	Name              string     `json:"name"`
	Email             flexString `json:"email"`
	CreatedAt         string     `json:"created_at"`
	TotalPrice        flexString `json:"total_price"`
	SubtotalPrice     flexString `json:"subtotal_price"`
	TotalTax          flexString `json:"total_tax"`
	Currency          string     `json:"currency"`
	FinancialStatus   flexString `json:"financial_status"`
	FulfillmentStatus flexString `json:"fulfillment_status"`
}

type createOrderRequest struct {
	Order newOrder `json:"order"`
}

type newOrder struct {
	LineItems       []newLineItem `json:"line_items"`
	Customer        newCustomer   `json:"customer"`
	Email           string        `json:"email,omitempty"`
	ShippingAddress newAddress    `json:"shipping_address"`
	BillingAddress  newAddress    `json:"billing_address"`
}

type newLineItem struct {
	VariantID interface{} `json:"variant_id"`
	Quantity  int         `json:"quantity"`
}

type newCustomer struct {
	Email            string `json:"email"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"accepts_marketing"`
}

type newAddress struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Province  string `json:"province,omitempty"`
	Country   string `json:"country"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
