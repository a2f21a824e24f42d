package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnoldart/shophub/internal/domain"
	"github.com/arnoldart/shophub/internal/pricing"
)

func filledCart() *domain.Cart {
	return &domain.Cart{
		UserID: "u1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "p1", Name: "iPhone 15 Pro Max", Price: 1_000_000, Discount: 10}, Quantity: 3},
		},
	}
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		Address: domain.Address{
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Phone:      "081234567890",
			Address:    "Jl. Sudirman No. 1",
			City:       "Jakarta",
			Province:   "DKI Jakarta",
			PostalCode: "10110",
		},
		ShippingTier:  domain.ShippingRegular,
		PaymentMethod: domain.PaymentCreditCard,
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	carts := &mockCartStore{}
	svc := NewService(carts, &mockGateway{}, &mockPublisher{})

	order, err := svc.Submit(context.Background(), "u1", validRequest())

	assert.Nil(t, order)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cart", verr.Field)
	assert.False(t, carts.wasCleared(), "empty-cart submit must leave the cart unchanged")
}

func TestSubmit_BlankAddressFields(t *testing.T) {
	blank := map[string]func(*domain.Address){
		"full_name":   func(a *domain.Address) { a.FullName = "" },
		"email":       func(a *domain.Address) { a.Email = "   " },
		"phone":       func(a *domain.Address) { a.Phone = "" },
		"address":     func(a *domain.Address) { a.Address = "\t" },
		"city":        func(a *domain.Address) { a.City = "" },
		"province":    func(a *domain.Address) { a.Province = "" },
		"postal_code": func(a *domain.Address) { a.PostalCode = "" },
	}

	for field, clear := range blank {
		t.Run(field, func(t *testing.T) {
			carts := &mockCartStore{cart: filledCart()}
			svc := NewService(carts, &mockGateway{}, &mockPublisher{})

			req := validRequest()
			clear(&req.Address)

			_, err := svc.Submit(context.Background(), "u1", req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
			assert.False(t, carts.wasCleared())
		})
	}
}

func TestSubmit_UnknownShippingTier(t *testing.T) {
	svc := NewService(&mockCartStore{cart: filledCart()}, &mockGateway{}, &mockPublisher{})

	req := validRequest()
	req.ShippingTier = "teleport"

	_, err := svc.Submit(context.Background(), "u1", req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "shipping_tier", verr.Field)
}

func TestSubmit_UnknownPaymentMethod(t *testing.T) {
	svc := NewService(&mockCartStore{cart: filledCart()}, &mockGateway{}, &mockPublisher{})

	req := validRequest()
	req.PaymentMethod = "cheque"

	_, err := svc.Submit(context.Background(), "u1", req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment_method", verr.Field)
}

func TestSubmit_Success(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	publisher := &mockPublisher{}
	svc := NewService(carts, &mockGateway{}, publisher)

	order, err := svc.Submit(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, "TXN-test", order.TransactionID)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "IDR", order.Currency)

	// 3 * 900_000 = 2_700_000, above the free-shipping threshold.
	assert.Equal(t, 2_700_000.0, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 2_700_000.0, order.GrandTotal)

	require.Len(t, order.Lines, 1)
	assert.Equal(t, 900_000.0, order.Lines[0].UnitPrice)
	assert.Equal(t, 2_700_000.0, order.Lines[0].Subtotal)

	assert.True(t, carts.wasCleared(), "cart must be cleared after a settled charge")
	require.Len(t, publisher.publishedOrders(), 1)
	assert.Equal(t, order.ID, publisher.publishedOrders()[0].ID)
}

func TestSubmit_ExpressShippingCharged(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	svc := NewService(carts, &mockGateway{}, &mockPublisher{})

	req := validRequest()
	req.ShippingTier = domain.ShippingExpress

	order, err := svc.Submit(context.Background(), "u1", req)

	require.NoError(t, err)
	assert.Equal(t, float64(pricing.ExpressFee), order.ShippingCost)
	assert.Equal(t, 2_700_000.0+float64(pricing.ExpressFee), order.GrandTotal)
}

func TestSubmit_GatewayError_CartUntouched(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	svc := NewService(carts, &mockGateway{err: errors.New("connection reset")}, &mockPublisher{})

	order, err := svc.Submit(context.Background(), "u1", validRequest())

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.False(t, carts.wasCleared(), "cart is cleared only when submission succeeds")
}

func TestSubmit_Declined_CartUntouched(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	gateway := &mockGateway{result: &ChargeResult{Declined: true, Reason: "insufficient funds"}}
	svc := NewService(carts, gateway, &mockPublisher{})

	order, err := svc.Submit(context.Background(), "u1", validRequest())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.False(t, carts.wasCleared())
}

func TestSubmit_CancelledDuringSettle_CartUntouched(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	gateway := NewSimulatedGateway(200*time.Millisecond, AlwaysApprove{})
	svc := NewService(carts, gateway, &mockPublisher{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	order, err := svc.Submit(ctx, "u1", validRequest())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, carts.wasCleared(), "a cancelled submission must not clear the cart later")
}

func TestSubmit_SimulatedSettleClearsCart(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	gateway := NewSimulatedGateway(20*time.Millisecond, AlwaysApprove{})
	svc := NewService(carts, gateway, &mockPublisher{})

	order, err := svc.Submit(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.True(t, carts.wasCleared())
}

func TestSubmit_PublisherFailureDoesNotFailCheckout(t *testing.T) {
	carts := &mockCartStore{cart: filledCart()}
	svc := NewService(carts, &mockGateway{}, &mockPublisher{err: errors.New("broker down")})

	order, err := svc.Submit(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.True(t, carts.wasCleared())
}

func TestSubmit_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	gateway := &mockGateway{err: errors.New("gateway down")}
	svc := NewService(&mockCartStore{cart: filledCart()}, gateway, &mockPublisher{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, "u1", validRequest())
		assert.Error(t, err)
	}

	before := gateway.chargeCount()
	_, err := svc.Submit(ctx, "u1", validRequest())

	assert.Error(t, err)
	assert.Equal(t, before, gateway.chargeCount(), "open breaker must not reach the gateway")
}
