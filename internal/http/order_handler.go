package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Orders interface {
	Checkout(ctx context.Context, req *service.CheckoutRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	Cancel(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, trackingNumber string) (*domain.Order, error)
}

type OrderHandler struct {
	orders  Orders
	timeout time.Duration
}

func NewOrderHandler(orders Orders, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	// The authenticated identity wins over whatever the body claims.
	req.UserID = userID
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	order, err := h.orders.Checkout(ctx, &req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListOrders(ctx, userID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Cancel(ctx, userID, orderID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

type UpdateStatusRequestDTO struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// UpdateStatus is the administrative endpoint driving the forward-only
// fulfilment status machine.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	order, err := h.orders.AdvanceStatus(ctx, orderID, status, req.TrackingNumber)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orderIDStr := chi.URLParam(r, "order_id")
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a valid UUID")
		return uuid.Nil, false
	}
	return orderID, true
}
