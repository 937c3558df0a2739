package domain

import "time"

// Order status values for tracked orders
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
)

// LineItem is a variant and quantity in an order
type LineItem struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// Customer is the buyer of an order
type Customer struct {
	Email            string `json:"email"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"accepts_marketing"`
}

// ShippingAddress is the delivery address of an order
type ShippingAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country"`
	Zip      string `json:"zip,omitempty"`
}

// Order is an order as returned by the store Admin API
type Order struct {
	ID                string `json:"id"`
	OrderNumber       string `json:"order_number"`
	Name              string `json:"name,omitempty"`
	Email             string `json:"email"`
	CreatedAt         string `json:"created_at,omitempty"`
	TotalPrice        string `json:"total_price"`
	SubtotalPrice     string `json:"subtotal_price,omitempty"`
	TotalTax          string `json:"total_tax,omitempty"`
	Currency          string `json:"currency"`
	FinancialStatus   string `json:"financial_status,omitempty"`
	FulfillmentStatus string `json:"fulfillment_status,omitempty"`
}

// CustomerInfo is the optional customer block of an order request
type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Marketing bool   `json:"marketing"`
}

// CreateOrderRequest is the input for placing an order on a connected store
type CreateOrderRequest struct {
	ProductID    string        `json:"productId"`
	StoreID      string        `json:"storeId"`
	Quantity     int           `json:"quantity"`
	CustomerInfo *CustomerInfo `json:"customerInfo,omitempty"`
	ProductTitle string        `json:"productTitle"`
	ProductPrice string        `json:"productPrice"`
}

// TrackedItem is an item line kept with a tracked order
type TrackedItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// TrackedOrder is an order kept in process memory for status and payment
type TrackedOrder struct {
	TrackingID    string        `json:"trackingId"`
	OrderID       string        `json:"orderId"`
	OrderNumber   string        `json:"orderNumber"`
	StoreID       string        `json:"storeId"`
	StoreName     string        `json:"storeName"`
	ProductTitle  string        `json:"productTitle"`
	ProductPrice  string        `json:"productPrice"`
	Quantity      int           `json:"quantity"`
	Customer      Customer      `json:"customer"`
	Total         string        `json:"total"`
	Currency      string        `json:"currency"`
	Status        string        `json:"status"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	Items         []TrackedItem `json:"items"`
}
