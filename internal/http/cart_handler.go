package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arnoldart/shophub/internal/cart"
	"github.com/arnoldart/shophub/internal/catalog"
	"github.com/arnoldart/shophub/internal/domain"
	"github.com/arnoldart/shophub/internal/pricing"
)

// Catalog is the read-only product lookup the cart handler needs to validate
// additions.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type CartHandler struct {
	carts   *cart.Store
	catalog Catalog
	timeout time.Duration
}

func NewCartHandler(carts *cart.Store, catalog Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartLineDTO struct {
	Product            domain.Product `json:"product"`
	Quantity           int            `json:"quantity"`
	LineTotal          float64        `json:"line_total"`
	FormattedLineTotal string         `json:"formatted_line_total"`
}

type CartResponseDTO struct {
	Lines          []CartLineDTO `json:"lines"`
	TotalItems     int           `json:"total_items"`
	TotalPrice     float64       `json:"total_price"`
	FormattedTotal string        `json:"formatted_total"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(h.carts.Get(ctx, sessionID)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusBadRequest, "unknown_product", "product does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to validate product")
		return
	}

	c := h.carts.AddItem(ctx, sessionID, *product)
	respondJSON(w, http.StatusCreated, toCartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// quantity <= 0 removes the line; the store owns that rule
	c := h.carts.UpdateQuantity(ctx, sessionID, productID, req.Quantity)
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	c := h.carts.RemoveItem(ctx, sessionID, productID)
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	h.carts.Clear(ctx, sessionID)
	respondJSON(w, http.StatusOK, toCartResponse(h.carts.Get(ctx, sessionID)))
}

func toCartResponse(c *domain.Cart) CartResponseDTO {
	lines := make([]CartLineDTO, 0, len(c.Lines))
	for _, line := range c.Lines {
		total := pricing.LineTotal(line)
		lines = append(lines, CartLineDTO{
			Product:            line.Product,
			Quantity:           line.Quantity,
			LineTotal:          total,
			FormattedLineTotal: pricing.FormatIDR(total),
		})
	}

	subtotal := pricing.Subtotal(c)
	return CartResponseDTO{
		Lines:          lines,
		TotalItems:     c.TotalItems(),
		TotalPrice:     subtotal,
		FormattedTotal: pricing.FormatIDR(subtotal),
	}
}
