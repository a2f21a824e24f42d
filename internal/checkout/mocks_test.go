package checkout

import (
	"context"
	"sync"

	"github.com/arnoldart/shophub/internal/domain"
)

// mockCartStore implements CartStore for testing
type mockCartStore struct {
	mu      sync.Mutex
	cart    *domain.Cart
	cleared bool
}

func (m *mockCartStore) Get(context.Context, string) *domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cart == nil {
		return &domain.Cart{UserID: "u1"}
	}
	return m.cart
}

func (m *mockCartStore) Clear(context.Context, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
	m.cart = &domain.Cart{UserID: "u1"}
}

func (m *mockCartStore) wasCleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

// mockGateway implements PaymentGateway for testing
type mockGateway struct {
	mu      sync.Mutex
	result  *ChargeResult
	err     error
	charges int
}

func (m *mockGateway) Charge(_ context.Context, _ ChargeRequest) (*ChargeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.charges++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &ChargeResult{TransactionID: "TXN-test"}, nil
}

func (m *mockGateway) chargeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.charges
}

// mockPublisher implements Publisher for testing
type mockPublisher struct {
	mu        sync.Mutex
	published []*domain.Order
	err       error
}

func (m *mockPublisher) PublishOrderConfirmed(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, order)
	return nil
}

func (m *mockPublisher) publishedOrders() []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published
}
