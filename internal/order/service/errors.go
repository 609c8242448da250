package service

import (
	"errors"
	"fmt"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
)

var (
	ErrEmptyCheckout     = errors.New("no items to check out")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrRequiresQuote     = errors.New("a line's selection is outside the automated pricing path")
)

// ValidationError names a specific missing checkout precondition, so each one
// reaches the customer as its own actionable message instead of a generic
// checkout failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// PriceMismatchError signals that the client-displayed total deviates from the
// server-resolved total beyond the rounding tolerance. Checkout rejects rather
// than silently trusting either side.
type PriceMismatchError struct {
	Submitted pricing.Money
	Resolved  pricing.Money
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("submitted total %s does not match resolved total %s", e.Submitted, e.Resolved)
}
