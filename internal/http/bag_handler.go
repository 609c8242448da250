package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/bag/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type Bag interface {
	GetBag(ctx context.Context, userID string) (*domain.Bag, error)
	AddLine(ctx context.Context, userID string, productID int64, sel pricing.Selection, quantity int) (*domain.Bag, error)
	UpdateLine(ctx context.Context, userID, lineID string, sel pricing.Selection, quantity int) (*domain.Bag, error)
	RemoveLine(ctx context.Context, userID, lineID string) (*domain.Bag, error)
	ClearBag(ctx context.Context, userID string) error
}

type BagHandler struct {
	bag     Bag
	timeout time.Duration
}

func NewBagHandler(bag Bag, timeout time.Duration) *BagHandler {
	return &BagHandler{
		bag:     bag,
		timeout: timeout,
	}
}

type AddLineRequestDTO struct {
	ProductID int64             `json:"productId"`
	Quantity  int               `json:"quantity"`
	Options   pricing.Selection `json:"customizations"`
}

type UpdateLineRequestDTO struct {
	Quantity int               `json:"quantity"`
	Options  pricing.Selection `json:"customizations"`
}

// BagResponseDTO wraps the bag with its recomputed subtotal so the client
// never has to sum lines itself.
type BagResponseDTO struct {
	UserID   string        `json:"userId"`
	Lines    []domain.Line `json:"lines"`
	Subtotal pricing.Money `json:"subtotal"`
}

func bagResponse(bag *domain.Bag) BagResponseDTO {
	return BagResponseDTO{
		UserID:   bag.UserID,
		Lines:    bag.Lines,
		Subtotal: bag.Subtotal(),
	}
}

func (h *BagHandler) GetBag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	bag, err := h.bag.GetBag(ctx, userID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bagResponse(bag))
}

func (h *BagHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	bag, err := h.bag.AddLine(ctx, userID, req.ProductID, req.Options, req.Quantity)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, bagResponse(bag))
}

func (h *BagHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	lineID := chi.URLParam(r, "line_id")
	if lineID == "" {
		respondError(w, http.StatusBadRequest, "invalid_line_id", "line_id is required")
		return
	}

	var req UpdateLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	bag, err := h.bag.UpdateLine(ctx, userID, lineID, req.Options, req.Quantity)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bagResponse(bag))
}

func (h *BagHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	lineID := chi.URLParam(r, "line_id")
	if lineID == "" {
		respondError(w, http.StatusBadRequest, "invalid_line_id", "line_id is required")
		return
	}

	bag, err := h.bag.RemoveLine(ctx, userID, lineID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bagResponse(bag))
}

func (h *BagHandler) ClearBag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.bag.ClearBag(ctx, userID); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
