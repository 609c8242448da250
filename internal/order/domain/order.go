package domain

import (
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

// Valid reports whether the value is one of the known statuses.
func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo enforces forward-only transitions along the fulfilment path.
// Cancellation is not an advance; it has its own gate below.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to > from
}

// Cancellable is true until the order has shipped.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// OrderItem is a deep copy of a bag line at order time. It is immutable once
// the order exists; there is no live repricing.
type OrderItem struct {
	ProductID      int64             `json:"product_id"`
	Name           string            `json:"name"`
	ImageURL       string            `json:"image"`
	UnitPrice      pricing.Money     `json:"price"`
	Quantity       int               `json:"quantity"`
	Customizations pricing.Selection `json:"customizations"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	Barangay   string `json:"barangay"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// PaymentInfo records the customer's chosen bank and uploaded receipt
// reference. The storefront does not process payment.
type PaymentInfo struct {
	Method  string `json:"method"`
	Receipt string `json:"receipt"`
	Status  string `json:"status"`
}

// Order is the immutable checkout snapshot. Subtotal and Total are kept as
// separate fields even though they are currently equal: the schema
// anticipates additive charges such as shipping and tax.
type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	Payment         PaymentInfo
	Subtotal        pricing.Money
	Total           pricing.Money
	Status          OrderStatus
	TrackingNumber  string
	IdempotencyKey  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
