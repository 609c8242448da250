package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	bagservice "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/service"
	catalogrepo "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/repository"
	orderrepo "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/repository"
	orderservice "github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleDomainError maps service and repository errors onto HTTP statuses.
// Validation failures keep their specific message so the customer sees which
// precondition is missing, not a generic checkout failure.
func handleDomainError(w http.ResponseWriter, err error) {
	var validationErr *orderservice.ValidationError
	var mismatchErr *orderservice.PriceMismatchError

	switch {
	case errors.Is(err, catalogrepo.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, orderrepo.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, bagservice.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "line_not_found", "line not found in bag")
	case errors.Is(err, bagservice.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", "product is not in stock")
	case errors.Is(err, bagservice.ErrRequiresQuote) || errors.Is(err, orderservice.ErrRequiresQuote):
		respondError(w, http.StatusUnprocessableEntity, "requires_quote", "this configuration needs a manual quote; contact us for pricing")
	case errors.Is(err, orderservice.ErrEmptyCheckout):
		respondError(w, http.StatusBadRequest, "empty_checkout", "your bag is empty")
	case errors.Is(err, orderservice.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", "the order can no longer change to that status")
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "validation_"+validationErr.Field, validationErr.Message)
	case errors.As(err, &mismatchErr):
		respondError(w, http.StatusConflict, "price_mismatch", "prices changed while you were checking out; review your bag and try again")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
