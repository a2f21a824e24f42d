// Package checkout sequences shipping and payment selection into an
// immutable order. The cart is cleared if and only if the charge settles
// successfully.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/arnoldart/shophub/internal/domain"
	"github.com/arnoldart/shophub/internal/pricing"
)

const currency = "IDR"

// CartStore is the slice of the cart API checkout needs.
// Consumers define this interface, not the cart package.
type CartStore interface {
	Get(ctx context.Context, userID string) *domain.Cart
	Clear(ctx context.Context, userID string)
}

// Publisher emits the confirmed order downstream. Failures never fail the
// checkout.
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, order *domain.Order) error
}

type SubmitRequest struct {
	Address       domain.Address
	ShippingTier  domain.ShippingTier
	PaymentMethod domain.PaymentMethod
}

type Service struct {
	carts     CartStore
	gateway   PaymentGateway
	publisher Publisher
	breaker   *gobreaker.CircuitBreaker[*ChargeResult]
}

func NewService(carts CartStore, gateway PaymentGateway, publisher Publisher) *Service {
	breaker := gobreaker.NewCircuitBreaker[*ChargeResult](gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Service{
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
		breaker:   breaker,
	}
}

// Submit validates the checkout form, charges the payment gateway and builds
// the immutable order record. On any failure the cart is left untouched.
func (s *Service) Submit(ctx context.Context, userID string, req SubmitRequest) (*domain.Order, error) {
	cart := s.carts.Get(ctx, userID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := validateAddress(req.Address); err != nil {
		return nil, err
	}
	if !req.ShippingTier.IsValid() {
		return nil, &ValidationError{Field: "shipping_tier", Reason: fmt.Sprintf("unknown shipping tier %q", req.ShippingTier)}
	}
	if !req.PaymentMethod.IsValid() {
		return nil, &ValidationError{Field: "payment_method", Reason: fmt.Sprintf("unknown payment method %q", req.PaymentMethod)}
	}

	order := buildOrder(userID, cart, req)

	if !domain.CanTransitionTo(order.Status, domain.OrderStatusProcessing) {
		return nil, ErrIllegalTransition
	}
	order.Status = domain.OrderStatusProcessing

	result, err := s.breaker.Execute(func() (*ChargeResult, error) {
		return s.gateway.Charge(ctx, ChargeRequest{
			OrderID:  order.ID,
			Method:   order.PaymentMethod,
			Amount:   order.GrandTotal,
			Currency: order.Currency,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}
	if result.Declined {
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.Reason)
	}

	if !domain.CanTransitionTo(order.Status, domain.OrderStatusConfirmed) {
		return nil, ErrIllegalTransition
	}
	order.Status = domain.OrderStatusConfirmed
	order.TransactionID = result.TransactionID

	// The charge settled: only now does the cart go away.
	s.carts.Clear(ctx, userID)

	if errPub := s.publisher.PublishOrderConfirmed(ctx, order); errPub != nil {
		log.Printf("failed to publish confirmed order %s: %v", order.ID, errPub)
	}

	return order, nil
}

func buildOrder(userID string, cart *domain.Cart, req SubmitRequest) *domain.Order {
	subtotal := pricing.Subtotal(cart)
	shippingCost := pricing.ShippingCost(req.ShippingTier, subtotal)

	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   pricing.DiscountedUnitPrice(line.Product),
			Subtotal:    pricing.LineTotal(line),
		})
	}

	return &domain.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Lines:         lines,
		Subtotal:      subtotal,
		ShippingTier:  req.ShippingTier,
		ShippingCost:  shippingCost,
		GrandTotal:    pricing.GrandTotal(subtotal, shippingCost),
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Status:        domain.OrderStatusPending,
		Currency:      currency,
		CreatedAt:     time.Now(),
	}
}

func validateAddress(a domain.Address) error {
	required := []struct {
		field string
		value string
	}{
		{"full_name", a.FullName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"province", a.Province},
		{"postal_code", a.PostalCode},
	}

	for _, f := range required {
		if isBlank(f.value) {
			return &ValidationError{Field: f.field, Reason: "required"}
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
