package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopmate/backend/internal/domain"
)

// Order defaults applied when the buyer leaves fields out
const (
	DefaultPaymentMethod = "paypal_demo"
	orderCurrency        = "ILS"

	defaultCustomerEmail     = "customer@example.com"
	defaultCustomerFirstName = "לקוח"
	defaultCustomerLastName  = "חדש"
	defaultAddressLine       = "רחוב ראשי 1"
	defaultCity              = "תל אביב"
	defaultProvince          = "מרכז"
	defaultCountry           = "IL"
	defaultZip               = "12345"

	defaultOrderListLimit = 10
	maxOrderListLimit     = 250
)

// OrderService places orders on connected stores and tracks them in memory
type OrderService struct {
	mutex   sync.RWMutex
	orders  map[string]*domain.TrackedOrder
	pending map[string]struct{}

	stores *StoreService
	logger *zap.Logger
	now    func() time.Time
}

// NewOrderService creates an order service over the store registry
func NewOrderService(stores *StoreService, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:  make(map[string]*domain.TrackedOrder),
		pending: make(map[string]struct{}),
		stores:  stores,
		logger:  logger,
		now:     time.Now,
	}
}

// Create orders the first variant of a product and starts tracking it as pending payment
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.TrackedOrder, error) {
	if strings.TrimSpace(req.StoreID) == "" {
		return nil, domain.NewValidationError("storeId", "store ID is required")
	}
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, domain.NewValidationError("productId", "product ID is required")
	}
	if req.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "quantity must be positive")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store, err := s.stores.Get(req.StoreID)
	if err != nil {
		return nil, err
	}

	product, err := store.Client.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if len(product.Variants) == 0 || product.Variants[0].ID == "" {
		return nil, domain.ErrNoVariants
	}

	customer, address := orderContact(req.CustomerInfo)
	items := []domain.LineItem{{VariantID: product.Variants[0].ID, Quantity: req.Quantity}}

	order, err := store.Client.CreateOrder(ctx, items, customer, address)
	if err != nil {
		s.logger.Error("order creation failed",
			zap.String("store_id", store.ID),
			zap.String("product_id", req.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	title := req.ProductTitle
	if title == "" {
		title = product.Title
	}
	price := req.ProductPrice
	if price == "" {
		price = product.RawPrice()
	}

	orderNumber := order.OrderNumber
	if orderNumber == "" {
		orderNumber = order.Name
	}

	tracked := &domain.TrackedOrder{
		TrackingID:   uuid.NewString(),
		OrderID:      order.ID,
		OrderNumber:  orderNumber,
		StoreID:      store.ID,
		StoreName:    store.Name,
		ProductTitle: title,
		ProductPrice: price,
		Quantity:     req.Quantity,
		Customer:     customer,
		Total:        orderTotal(order.TotalPrice, price, req.Quantity),
		Currency:     orderCurrency,
		Status:       domain.OrderStatusPendingPayment,
		CreatedAt:    s.now(),
		Items:        []domain.TrackedItem{{Title: title, Price: price, Quantity: req.Quantity}},
	}

	s.mutex.Lock()
	s.orders[tracked.TrackingID] = tracked
	s.pending[tracked.TrackingID] = struct{}{}
	s.mutex.Unlock()

	s.logger.Info("order created",
		zap.String("tracking_id", tracked.TrackingID),
		zap.String("order_id", tracked.OrderID),
		zap.String("store_id", store.ID),
	)
	return cloneOrder(tracked), nil
}

// Status returns a tracked order
func (s *OrderService) Status(trackingID string) (*domain.TrackedOrder, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, ok := s.orders[trackingID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// Pay marks a tracked order as paid. No payment is processed.
func (s *OrderService) Pay(trackingID, paymentMethod string) (*domain.TrackedOrder, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = DefaultPaymentMethod
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, ok := s.orders[trackingID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	s.markPaidLocked(order)
	order.PaymentMethod = paymentMethod

	s.logger.Info("order paid", zap.String("tracking_id", trackingID), zap.String("payment_method", paymentMethod))
	return cloneOrder(order), nil
}

// Complete marks a pending order as paid from the checkout page.
// Orders that were already paid are not found.
func (s *OrderService) Complete(trackingID string) (*domain.TrackedOrder, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.pending[trackingID]; !ok {
		return nil, domain.ErrOrderNotFound
	}
	order, ok := s.orders[trackingID]
	if !ok {
		delete(s.pending, trackingID)
		return nil, domain.ErrOrderNotFound
	}
	s.markPaidLocked(order)

	s.logger.Info("order completed", zap.String("tracking_id", trackingID))
	return cloneOrder(order), nil
}

// ListStoreOrders lists a store's upstream orders. An empty status lists all.
func (s *OrderService) ListStoreOrders(ctx context.Context, storeID string, limit int, status string) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultOrderListLimit
	}
	limit = min(limit, maxOrderListLimit)

	store, err := s.stores.Get(storeID)
	if err != nil {
		return nil, err
	}
	return store.Client.ListOrders(ctx, limit, strings.TrimSpace(status))
}

// PendingCount returns the number of orders awaiting payment
func (s *OrderService) PendingCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.pending)
}

// Reset forgets every tracked order
func (s *OrderService) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	clear(s.orders)
	clear(s.pending)
}

func (s *OrderService) markPaidLocked(order *domain.TrackedOrder) {
	paidAt := s.now()
	order.Status = domain.OrderStatusPaid
	order.PaidAt = &paidAt
	delete(s.pending, order.TrackingID)
}

// orderContact fills the customer and shipping address from the optional buyer details
func orderContact(info *domain.CustomerInfo) (domain.Customer, domain.ShippingAddress) {
	if info == nil {
		info = &domain.CustomerInfo{}
	}

	customer := domain.Customer{
		Email:            valueOr(info.Email, defaultCustomerEmail),
		FirstName:        valueOr(info.FirstName, defaultCustomerFirstName),
		LastName:         valueOr(info.LastName, defaultCustomerLastName),
		Phone:            strings.TrimSpace(info.Phone),
		AcceptsMarketing: info.Marketing,
	}
	address := domain.ShippingAddress{
		Address1: valueOr(info.Address, defaultAddressLine),
		City:     defaultCity,
		Province: defaultProvince,
		Country:  defaultCountry,
		Zip:      defaultZip,
	}
	return customer, address
}

// orderTotal prefers the upstream total and otherwise computes price × quantity
func orderTotal(upstream, unitPrice string, quantity int) string {
	if strings.TrimSpace(upstream) != "" {
		return upstream
	}
	price, err := decimal.NewFromString(strings.TrimSpace(unitPrice))
	if err != nil {
		return "0.00"
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2)
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func cloneOrder(order *domain.TrackedOrder) *domain.TrackedOrder {
	c := *order
	c.Items = append([]domain.TrackedItem(nil), order.Items...)
	if order.PaidAt != nil {
		paidAt := *order.PaidAt
		c.PaidAt = &paidAt
	}
	return &c
}
