package cache

import (
	"context"
	"errors"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
)

type ProductCache interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

var ErrCacheMiss = errors.New("cache miss")
