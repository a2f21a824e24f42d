package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arnoldart/shophub/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
	timeout time.Duration
}

func NewCatalogHandler(svc *catalog.Service, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		timeout: timeout,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	opts := catalog.ListOptions{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Brands:   q["brand"],
		SortBy:   q.Get("sort"),
	}

	products, err := h.catalog.List(ctx, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}
