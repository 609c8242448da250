package domain

import (
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
)

// Product is a catalog entry. It is authored by catalog administration and
// read-only from the storefront's perspective; checkout never mutates it.
type Product struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    pricing.Category  `json:"category"`
	Subcategory string            `json:"subcategory,omitempty"`
	BasePrice   pricing.Money     `json:"basePrice"`
	ImageURL    string            `json:"imageUrl"`
	InStock     bool              `json:"inStock"`
	Options     pricing.OptionSet `json:"availableOptions"`
	Pricing     pricing.Spec      `json:"pricing"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Filter narrows a catalog listing.
type Filter struct {
	Category    pricing.Category
	Subcategory string
	InStock     *bool
}
