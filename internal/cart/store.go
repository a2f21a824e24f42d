// Package cart owns the in-memory carts and their persisted mirror. All
// mutation goes through Store; no other component touches a cart directly.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/arnoldart/shophub/internal/domain"
	"github.com/arnoldart/shophub/internal/pricing"
	"github.com/arnoldart/shophub/internal/snapshot"
)

// Store keeps one cart per user. Each mutation and its write-through save
// happen under the lock, so every persisted snapshot is self-consistent even
// under a rapid sequence of mutations.
type Store struct {
	mu        sync.RWMutex
	carts     map[string]*domain.Cart
	snapshots snapshot.Store
}

func NewStore(snapshots snapshot.Store) *Store {
	return &Store{
		carts:     make(map[string]*domain.Cart),
		snapshots: snapshots,
	}
}

// Get returns a copy of the user's cart, hydrating it from the snapshot slot
// on first access.
func (s *Store) Get(ctx context.Context, userID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneCart(s.cart(ctx, userID))
}

// AddItem adds one unit of product. An existing line is incremented, a new
// line starts at quantity 1 from the product snapshot. Stock is not enforced
// here; callers check stock before calling.
func (s *Store) AddItem(ctx context.Context, userID string, product domain.Product) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	now := time.Now()

	if i := c.Line(product.ID); i >= 0 {
		c.Lines[i].Quantity++
	} else {
		c.Lines = append(c.Lines, domain.CartLine{
			Product:  product,
			Quantity: 1,
			AddedAt:  now,
		})
	}
	c.UpdatedAt = now

	s.persist(ctx, c)
	return cloneCart(c)
}

// RemoveItem deletes the line for productID. Absent lines are a no-op, not an
// error.
func (s *Store) RemoveItem(ctx context.Context, userID, productID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	if removeLine(c, productID) {
		s.persist(ctx, c)
	}
	return cloneCart(c)
}

// UpdateQuantity sets the line's quantity. A quantity <= 0 removes the line
// entirely. An absent product is a no-op; no new line is created.
func (s *Store) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)

	if quantity <= 0 {
		if removeLine(c, productID) {
			s.persist(ctx, c)
		}
		return cloneCart(c)
	}

	if i := c.Line(productID); i >= 0 {
		c.Lines[i].Quantity = quantity
		c.UpdatedAt = time.Now()
		s.persist(ctx, c)
	}
	return cloneCart(c)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	c.Lines = nil
	c.UpdatedAt = time.Now()
	s.persist(ctx, c)
}

// TotalPrice is the discounted subtotal over all lines, full precision.
func (s *Store) TotalPrice(ctx context.Context, userID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pricing.Subtotal(s.cart(ctx, userID))
}

// TotalItems is the sum of line quantities.
func (s *Store) TotalItems(ctx context.Context, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart(ctx, userID).TotalItems()
}

// cart returns the live cart for userID, loading the persisted snapshot on
// first access. Storage errors and malformed payloads fail open to an empty
// cart: cart state is best-effort, never a user-facing failure. Callers must
// hold the lock.
func (s *Store) cart(ctx context.Context, userID string) *domain.Cart {
	if c, ok := s.carts[userID]; ok {
		return c
	}

	c := &domain.Cart{UserID: userID, CreatedAt: time.Now()}

	var stored domain.Cart
	err := s.snapshots.Load(ctx, snapshot.CartKey(userID), &stored)
	switch {
	case err == nil:
		stored.UserID = userID
		c = &stored
	case errors.Is(err, snapshot.ErrNoSnapshot):
		// first visit, start empty
	default:
		log.Printf("cart snapshot load failed for user %s, starting empty: %v", userID, err)
	}

	s.carts[userID] = c
	return c
}

func removeLine(c *domain.Cart, productID string) bool {
	i := c.Line(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.UpdatedAt = time.Now()
	return true
}

// persist writes the cart through to its snapshot slot. Failures are logged
// and swallowed; durability is best-effort. Callers must hold the lock.
func (s *Store) persist(ctx context.Context, c *domain.Cart) {
	if err := s.snapshots.Save(ctx, snapshot.CartKey(c.UserID), c); err != nil {
		log.Printf("cart snapshot save failed for user %s: %v", c.UserID, err)
	}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Lines = make([]domain.CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return &out
}
