package service

import (
	"fmt"
	"math/rand"
	"time"
)

// NewOrderNumber builds a human-readable order number: the EC prefix, the
// current year, and a zero-padded 4-digit random component. Uniqueness is
// enforced by the database constraint; Checkout regenerates on collision.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("EC%d%04d", now.Year(), rand.Intn(10000))
}
