package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/repository"
	catalogdomain "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
)

var (
	ErrLineNotFound  = errors.New("line not found in bag")
	ErrRequiresQuote = errors.New("selection is outside the automated pricing path")
	ErrOutOfStock    = errors.New("product is not in stock")
)

// CatalogReader is the slice of the catalog the bag needs: trusted product
// definitions for pricing and snapshotting.
type CatalogReader interface {
	GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

type BagService struct {
	repo    repository.BagRepository
	catalog CatalogReader
}

func NewBagService(repo repository.BagRepository, catalog CatalogReader) *BagService {
	return &BagService{repo: repo, catalog: catalog}
}

// GetBag returns the user's bag, or an empty one when no record exists.
func (s *BagService) GetBag(ctx context.Context, userID string) (*domain.Bag, error) {
	bag, err := s.repo.GetBag(ctx, userID)
	if errors.Is(err, repository.ErrBagNotFound) {
		now := time.Now()
		return &domain.Bag{
			UserID:    userID,
			Lines:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return bag, nil
}

// AddLine resolves the unit price from the current catalog, snapshots the
// product's name and image, and appends a new line. The same product with a
// different configuration becomes a separate line.
func (s *BagService) AddLine(ctx context.Context, userID string, productID int64, sel pricing.Selection, quantity int) (*domain.Bag, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	price, quote := pricing.PriceFor(product.Category, product.BasePrice, product.Pricing, sel)
	if quote {
		return nil, ErrRequiresQuote
	}

	bag, err := s.GetBag(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bag.Lines = append(bag.Lines, domain.Line{
		ID:        domain.NewLineID(productID, now),
		ProductID: productID,
		Name:      product.Name,
		ImageURL:  product.ImageURL,
		UnitPrice: price,
		Quantity:  quantity,
		Options:   sel,
		AddedAt:   now,
	})

	if err := s.repo.ReplaceBag(ctx, bag); err != nil {
		log.Printf("repo replace bag error: %v", err)
		return nil, err
	}
	return bag, nil
}

// UpdateLine overwrites a line's selection and quantity, re-resolving the
// price from current attributes; no stale price survives an edit.
func (s *BagService) UpdateLine(ctx context.Context, userID, lineID string, sel pricing.Selection, quantity int) (*domain.Bag, error) {
	bag, err := s.GetBag(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range bag.Lines {
		if bag.Lines[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrLineNotFound
	}

	product, err := s.catalog.GetProduct(ctx, bag.Lines[idx].ProductID)
	if err != nil {
		return nil, err
	}

	price, quote := pricing.PriceFor(product.Category, product.BasePrice, product.Pricing, sel)
	if quote {
		return nil, ErrRequiresQuote
	}

	bag.Lines[idx].Options = sel
	bag.Lines[idx].Quantity = quantity
	bag.Lines[idx].UnitPrice = price

	if err := s.repo.ReplaceBag(ctx, bag); err != nil {
		log.Printf("repo replace bag error: %v", err)
		return nil, err
	}
	return bag, nil
}

func (s *BagService) RemoveLine(ctx context.Context, userID, lineID string) (*domain.Bag, error) {
	bag, err := s.GetBag(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := bag.Lines[:0]
	found := false
	for _, line := range bag.Lines {
		if line.ID == lineID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, ErrLineNotFound
	}
	bag.Lines = kept

	if err := s.repo.ReplaceBag(ctx, bag); err != nil {
		log.Printf("repo replace bag error: %v", err)
		return nil, err
	}
	return bag, nil
}

func (s *BagService) ClearBag(ctx context.Context, userID string) error {
	if err := s.repo.ClearBag(ctx, userID); err != nil {
		log.Printf("repo clear bag error: %v", err)
		return err
	}
	return nil
}
