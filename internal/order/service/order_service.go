package service

import (
	"context"
	"errors"
	"log"
	"time"

	catalogdomain "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/repository"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/google/uuid"
)

// priceTolerance is the allowed deviation between the client-displayed total
// and the authoritative server total: one peso of rounding slack.
const priceTolerance = pricing.Money(100)

// maxOrderNumberAttempts bounds the regenerate-on-collision loop.
const maxOrderNumberAttempts = 5

// CatalogReader provides the trusted product definitions every submitted
// line is repriced against.
type CatalogReader interface {
	GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

// UserDirectory is the slice of account management checkout needs: whether
// the customer's email address has been verified.
type UserDirectory interface {
	IsEmailVerified(ctx context.Context, userID string) (bool, error)
}

// BagStore lets checkout empty the bag once the order is persisted.
type BagStore interface {
	ClearBag(ctx context.Context, userID string) error
}

// EventPublisher announces order lifecycle changes. Publication failures are
// logged, never surfaced to the customer.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order) error
}

// SubmittedLine is one cart line as the client submitted it. UnitPrice is the
// client-displayed price and is never trusted: it only participates in the
// mismatch check against the server-resolved price.
type SubmittedLine struct {
	ProductID int64             `json:"productId"`
	UnitPrice pricing.Money     `json:"price"`
	Quantity  int               `json:"quantity"`
	Options   pricing.Selection `json:"customizations"`
}

type CheckoutRequest struct {
	UserID          string                 `json:"userId"`
	IdempotencyKey  string                 `json:"idempotencyKey"`
	Items           []SubmittedLine        `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Payment         domain.PaymentInfo     `json:"paymentInfo"`
	Subtotal        pricing.Money          `json:"subtotal"`
	Total           pricing.Money          `json:"total"`
}

type OrderService struct {
	repo      repository.OrderRepository
	catalog   CatalogReader
	users     UserDirectory
	bags      BagStore
	publisher EventPublisher
}

func NewOrderService(repo repository.OrderRepository, catalog CatalogReader, users UserDirectory, bags BagStore, publisher EventPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		catalog:   catalog,
		users:     users,
		bags:      bags,
		publisher: publisher,
	}
}

// Checkout validates the submission, reprices every line from the catalog,
// and persists the order. A resubmission carrying the same idempotency key
// returns the already-created order instead of a duplicate.
func (s *OrderService) Checkout(ctx context.Context, req *CheckoutRequest) (*domain.Order, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			log.Printf("duplicate checkout for idempotency key %s, returning order %s", req.IdempotencyKey, existing.OrderNumber)
			return existing, nil
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
	}

	items, subtotal, err := s.repriceLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// total == subtotal today; the fields stay separate because the schema
	// anticipates additive charges.
	total := subtotal
	if (total - req.Total).Abs() > priceTolerance {
		return nil, &PriceMismatchError{Submitted: req.Total, Resolved: total}
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Payment: domain.PaymentInfo{
			Method:  req.Payment.Method,
			Receipt: req.Payment.Receipt,
			Status:  "submitted",
		},
		Subtotal:       subtotal,
		Total:          total,
		Status:         domain.OrderStatusPending,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.persistWithFreshNumber(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			// Lost a race against our own duplicate; hand back the winner.
			return s.repo.GetOrderByIdempotencyKey(ctx, req.IdempotencyKey)
		}
		return nil, err
	}

	if err := s.bags.ClearBag(ctx, req.UserID); err != nil {
		log.Printf("failed to clear bag for user %s: %v", req.UserID, err)
	}
	if err := s.publisher.OrderPlaced(ctx, order); err != nil {
		log.Printf("failed to publish order placed event for %s: %v", order.OrderNumber, err)
	}

	return order, nil
}

func (s *OrderService) validate(ctx context.Context, req *CheckoutRequest) error {
	if len(req.Items) == 0 {
		return ErrEmptyCheckout
	}

	verified, err := s.users.IsEmailVerified(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !verified {
		return &ValidationError{Field: "email", Message: "verify your email address before checking out"}
	}

	addr := req.ShippingAddress
	if addr.FullName == "" || addr.Street == "" || addr.City == "" || addr.Province == "" || addr.Phone == "" {
		return &ValidationError{Field: "shippingAddress", Message: "complete your shipping address"}
	}
	if req.Payment.Method == "" {
		return &ValidationError{Field: "paymentMethod", Message: "select a bank for your payment"}
	}
	if req.Payment.Receipt == "" {
		return &ValidationError{Field: "receipt", Message: "upload your payment receipt"}
	}
	return nil
}

// repriceLines re-resolves every submitted line against trusted catalog data
// and rebuilds the order items with server-side prices and snapshots.
func (s *OrderService) repriceLines(ctx context.Context, lines []SubmittedLine) ([]domain.OrderItem, pricing.Money, error) {
	items := make([]domain.OrderItem, 0, len(lines))
	var subtotal pricing.Money

	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, 0, err
		}

		price, quote := pricing.PriceFor(product.Category, product.BasePrice, product.Pricing, line.Options)
		if quote {
			return nil, 0, ErrRequiresQuote
		}

		items = append(items, domain.OrderItem{
			ProductID:      product.ID,
			Name:           product.Name,
			ImageURL:       product.ImageURL,
			UnitPrice:      price,
			Quantity:       line.Quantity,
			Customizations: line.Options,
		})
		subtotal += price * pricing.Money(line.Quantity)
	}

	return items, subtotal, nil
}

func (s *OrderService) persistWithFreshNumber(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = NewOrderNumber(time.Now())
		err = s.repo.CreateOrder(ctx, order)
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return err
		}
		log.Printf("order number collision on %s, regenerating", order.OrderNumber)
	}
	return err
}

// GetOrder returns the order only to its owner. Another user's order id
// reads as not found, so order ids leak nothing.
func (s *OrderService) GetOrder(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByUserID(ctx, userID)
}

// Cancel flips a pending or processing order to cancelled, owner only. Once
// shipped or delivered the order can no longer be cancelled.
func (s *OrderService) Cancel(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, order)
}

func (s *OrderService) cancel(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if !order.Status.Cancellable() {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled, "")
	if err != nil {
		return nil, err
	}

	if err := s.publisher.OrderStatusChanged(ctx, updated); err != nil {
		log.Printf("failed to publish status change for %s: %v", updated.OrderNumber, err)
	}
	return updated, nil
}

// AdvanceStatus moves an order forward along the fulfilment path. It is the
// administrative entry point and is not scoped to an owner; the tracking
// number accompanies the shipped transition.
func (s *OrderService) AdvanceStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == domain.OrderStatusCancelled {
		return s.cancel(ctx, order)
	}
	if !order.Status.CanAdvanceTo(status) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, trackingNumber)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.OrderStatusChanged(ctx, updated); err != nil {
		log.Printf("failed to publish status change for %s: %v", updated.OrderNumber, err)
	}
	return updated, nil
}
