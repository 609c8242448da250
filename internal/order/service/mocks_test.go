package service

import (
	"context"
	"sync"

	catalogdomain "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	catalogrepo "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/repository"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/repository"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/google/uuid"
)

// MockOrderRepository implements repository.OrderRepository for testing.
type MockOrderRepository struct {
	m      sync.Mutex
	orders map[uuid.UUID]*domain.Order

	// CollideFirst makes the first N creates fail with a duplicate order
	// number, exercising the regenerate loop.
	CollideFirst int
	CreateErr    error
	CreatedCount int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.CollideFirst > 0 {
		m.CollideFirst--
		return repository.ErrDuplicateOrderNumber
	}
	for _, existing := range m.orders {
		if existing.IdempotencyKey != "" && existing.IdempotencyKey == order.IdempotencyKey {
			return repository.ErrDuplicateSubmission
		}
	}
	clone := *order
	m.orders[order.ID] = &clone
	m.CreatedCount++
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (m *MockOrderRepository) GetOrderByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for _, order := range m.orders {
		if order.IdempotencyKey == key {
			clone := *order
			return &clone, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *MockOrderRepository) ListOrdersByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			clone := *order
			orders = append(orders, &clone)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	clone := *order
	return &clone, nil
}

func (m *MockOrderRepository) RunMigrations(*repository.Credentials) error { return nil }
func (m *MockOrderRepository) Close() error                               { return nil }

// MockCatalog serves trusted product definitions for the repricing pass.
type MockCatalog struct {
	Products map[int64]*catalogdomain.Product
}

func (m *MockCatalog) GetProduct(_ context.Context, id int64) (*catalogdomain.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, catalogrepo.ErrProductNotFound
	}
	return p, nil
}

type MockUserDirectory struct {
	Verified bool
	Err      error
}

func (m *MockUserDirectory) IsEmailVerified(context.Context, string) (bool, error) {
	return m.Verified, m.Err
}

type MockBagStore struct {
	Cleared []string
}

func (m *MockBagStore) ClearBag(_ context.Context, userID string) error {
	m.Cleared = append(m.Cleared, userID)
	return nil
}

type MockPublisher struct {
	Placed        []string
	StatusChanges []string
}

func (m *MockPublisher) OrderPlaced(_ context.Context, order *domain.Order) error {
	m.Placed = append(m.Placed, order.OrderNumber)
	return nil
}

func (m *MockPublisher) OrderStatusChanged(_ context.Context, order *domain.Order) error {
	m.StatusChanges = append(m.StatusChanges, string(order.Status))
	return nil
}

func checkoutCatalog() *MockCatalog {
	return &MockCatalog{Products: map[int64]*catalogdomain.Product{
		1: {
			ID:        1,
			Name:      "Classic Solitaire Engagement Ring",
			Category:  pricing.CategoryRings,
			BasePrice: pricing.Pesos(15000),
			InStock:   true,
			Pricing: pricing.Spec{Combinations: []pricing.Combination{
				{Stone: "Signity", Carat: "1", Metal: "14k White Gold", Price: pricing.Pesos(19000)},
			}},
		},
		3: {
			ID:        3,
			Name:      "Tennis Necklace",
			Category:  pricing.CategoryNecklaces,
			BasePrice: pricing.Pesos(60000),
			InStock:   true,
			Pricing: pricing.Spec{Combinations: []pricing.Combination{
				{Stone: "Moissanite", Metal: "18k White Gold", Price: pricing.Pesos(75000)},
			}},
		},
	}}
}
