package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arnoldart/shophub/internal/checkout"
	"github.com/arnoldart/shophub/internal/domain"
	"github.com/arnoldart/shophub/internal/pricing"
)

// Checkouter is the submit contract; the checkout.Service satisfies it.
type Checkouter interface {
	Submit(ctx context.Context, userID string, req checkout.SubmitRequest) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout Checkouter
	timeout  time.Duration
}

func NewCheckoutHandler(svc Checkouter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type SubmitRequestDTO struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Province       string `json:"province"`
	PostalCode     string `json:"postal_code"`
	ShippingMethod string `json:"shipping_method"`
	PaymentMethod  string `json:"payment_method"`
}

type OrderResponseDTO struct {
	Order          *domain.Order `json:"order"`
	FormattedTotal string        `json:"formatted_total"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.Submit(ctx, sessionID, checkout.SubmitRequest{
		Address: domain.Address{
			FullName:   req.FullName,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			Province:   req.Province,
			PostalCode: req.PostalCode,
		},
		ShippingTier:  domain.ShippingTier(req.ShippingMethod),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, OrderResponseDTO{
		Order:          order,
		FormattedTotal: pricing.FormatIDR(order.GrandTotal),
	})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation_failed", verr.Error())
	case errors.Is(err, checkout.ErrPaymentDeclined):
		respondError(w, http.StatusPaymentRequired, "payment_declined", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, http.StatusGatewayTimeout, "timeout", "checkout did not settle in time")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
	}
}
