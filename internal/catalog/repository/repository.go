package repository

import (
	"context"
	"errors"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error)
	RunMigrations(*Credentials) error
	Close() error
}
