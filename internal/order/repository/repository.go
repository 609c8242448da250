package repository

import (
	"context"
	"errors"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/domain"
	"github.com/google/uuid"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrDuplicateSubmission  = errors.New("order for this idempotency key already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, trackingNumber string) (*domain.Order, error)
	RunMigrations(*Credentials) error
	Close() error
}
