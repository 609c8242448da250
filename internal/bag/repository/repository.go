package repository

import (
	"context"
	"errors"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/domain"
)

var ErrBagNotFound = errors.New("bag not found")

// BagRepository stores bags as replaceable whole-record snapshots. There is
// no per-line merge; the last writer wins.
type BagRepository interface {
	GetBag(ctx context.Context, userID string) (*domain.Bag, error)
	ReplaceBag(ctx context.Context, bag *domain.Bag) error
	ClearBag(ctx context.Context, userID string) error
}
