package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/service"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/go-chi/chi/v5"
)

// Catalog is the slice of the catalog service the HTTP layer consumes.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error)
	PreviewPrice(ctx context.Context, id int64, sel pricing.Selection) (*service.PricePreview, error)
	DefaultSelection(ctx context.Context, id int64) (pricing.Selection, error)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(catalog Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := domain.Filter{
		Category:    pricing.Category(r.URL.Query().Get("category")),
		Subcategory: r.URL.Query().Get("subcategory"),
	}
	if v := r.URL.Query().Get("in_stock"); v != "" {
		inStock := v == "true"
		filter.InStock = &inStock
	}

	products, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// PreviewPrice powers the interactive configurator: the browser posts the
// current selection and displays the returned price without a page reload.
func (h *ProductHandler) PreviewPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var sel pricing.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	preview, err := h.catalog.PreviewPrice(ctx, productID, sel)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, preview)
}

func (h *ProductHandler) DefaultSelection(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	sel, err := h.catalog.DefaultSelection(ctx, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sel)
}

func parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
