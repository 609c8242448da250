package domain

import (
	"fmt"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
)

// Bag is a user's pre-checkout collection of configured lines. It is a
// replaceable snapshot: concurrent writers race with last-write-wins at the
// bag-record granularity.
type Bag struct {
	ID        string    `bson:"_id,omitempty"`
	UserID    string    `bson:"user_id"`
	Lines     []Line    `bson:"lines"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Line is one configured product in the bag. Name, image and unit price are
// snapshotted at add time so later catalog edits do not reach into the bag;
// editing the line re-resolves the price from current attributes.
type Line struct {
	ID        string            `bson:"line_id" json:"lineId"`
	ProductID int64             `bson:"product_id" json:"productId"`
	Name      string            `bson:"name" json:"name"`
	ImageURL  string            `bson:"image_url" json:"image"`
	UnitPrice pricing.Money     `bson:"unit_price" json:"price"`
	Quantity  int               `bson:"quantity" json:"quantity"`
	Options   pricing.Selection `bson:"options" json:"customizations"`
	AddedAt   time.Time         `bson:"added_at" json:"addedAt"`
}

// NewLineID embeds the product id and an add-time timestamp, so the same
// product with different configurations coexists as distinct lines.
func NewLineID(productID int64, at time.Time) string {
	return fmt.Sprintf("%d-%d", productID, at.UnixNano())
}

// Subtotal is the sum of unit price times quantity over all lines.
func (b *Bag) Subtotal() pricing.Money {
	var total pricing.Money
	for _, line := range b.Lines {
		total += line.UnitPrice * pricing.Money(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the bag holds no lines; an empty bag keeps no
// backing record.
func (b *Bag) IsEmpty() bool {
	return len(b.Lines) == 0
}
