// Package cart maintains the gateway-visible mirror of the server-held cart.
// Every mutation is a round-trip; the mirror is replaced wholesale with the
// server's response, never adjusted with local math.
package cart

import (
	"context"
	"log"
	"sync"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/session"
)

// Backend is the slice of the gateway client the synchronizer needs.
type Backend interface {
	FetchCart(ctx context.Context) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, productID int64, quantity int) ([]domain.CartLine, error)
	RemoveFromCart(ctx context.Context, productID int64) ([]domain.CartLine, error)
}

// Synchronizer holds the cart mirror for one session. The mirror lives only
// for the request that built it; nothing cart-shaped is persisted gateway-side.
type Synchronizer struct {
	backend Backend
	sess    *session.Session

	mu    sync.Mutex
	lines []domain.CartLine
}

func NewSynchronizer(b Backend, sess *session.Session) *Synchronizer {
	return &Synchronizer{backend: b, sess: sess}
}

// Fetch replaces the mirror with the server's cart. Signed-out sessions have
// no server cart, so the mirror is simply emptied. A failed fetch keeps the
// previous mirror; stale-but-available beats a blanked view.
func (s *Synchronizer) Fetch(ctx context.Context) error {
	if !s.sess.Authenticated() {
		s.replace(nil)
		return nil
	}
	lines, err := s.backend.FetchCart(ctx)
	if err != nil {
		log.Printf("cart fetch failed: %v", err)
		return err
	}
	s.replace(lines)
	return nil
}

// Add sets the absolute quantity for a product and adopts the returned cart.
func (s *Synchronizer) Add(ctx context.Context, productID int64, quantity int) error {
	lines, err := s.backend.AddToCart(ctx, productID, quantity)
	if err != nil {
		return err
	}
	s.replace(lines)
	return nil
}

func (s *Synchronizer) Remove(ctx context.Context, productID int64) error {
	lines, err := s.backend.RemoveFromCart(ctx, productID)
	if err != nil {
		return err
	}
	s.replace(lines)
	return nil
}

// SetQuantity builds quantity edits from the two mutation primitives: zero or
// less removes the line, anything else is an absolute add.
func (s *Synchronizer) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	return s.Add(ctx, productID, quantity)
}

// Clear resets the mirror locally. Used after order creation consumed the
// server cart, so no round-trip is made.
func (s *Synchronizer) Clear() {
	s.replace(nil)
}

// Lines returns a copy of the mirror.
func (s *Synchronizer) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is recomputed from the mirror on every call, never cached.
func (s *Synchronizer) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartTotal(s.lines)
}

func (s *Synchronizer) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Synchronizer) replace(lines []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
}
