package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/cache"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/repository"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"golang.org/x/sync/singleflight"
)

type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede on hot products
}

func NewCatalogService(repo repository.ProductRepository, cache cache.ProductCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

// GetProduct reads through the cache. Every interactive price preview hits
// this path, so concurrent misses for the same product are collapsed into a
// single repository read.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(fmt.Sprintf("%d", id), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.repo.GetProduct(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// PricePreview is the interactive configurator's price endpoint. It resolves
// from trusted catalog data so the browser preview and the checkout
// authority can never disagree.
type PricePreview struct {
	ProductID     int64             `json:"productId"`
	Price         pricing.Money     `json:"price"`
	RequiresQuote bool              `json:"requiresQuote"`
	PairNotice    bool              `json:"pairNotice"`
	Selection     pricing.Selection `json:"selection"`
}

func (s *CatalogService) PreviewPrice(ctx context.Context, id int64, sel pricing.Selection) (*PricePreview, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	price, quote := pricing.PriceFor(product.Category, product.BasePrice, product.Pricing, sel)
	return &PricePreview{
		ProductID:     product.ID,
		Price:         price,
		RequiresQuote: quote,
		PairNotice:    pricing.PairNotice(product.Category),
		Selection:     sel,
	}, nil
}

// DefaultSelection seeds the configurator with the first legal value on each
// axis the product's category exposes.
func (s *CatalogService) DefaultSelection(ctx context.Context, id int64) (pricing.Selection, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return pricing.Selection{}, err
	}
	return pricing.Defaults(product.Category, product.Subcategory, product.Options), nil
}
