// Package orders provides the read-only order projections: confirmation
// after checkout and the user's order history, plus user-initiated
// cancellation.
package orders

import (
	"context"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

type Backend interface {
	FetchOrder(ctx context.Context, id int64) (*domain.Order, error)
	FetchOrders(ctx context.Context) ([]domain.Order, error)
	CancelOrder(ctx context.Context, id int64) error
}

type Service struct {
	backend Backend
}

func NewService(b Backend) *Service {
	return &Service{backend: b}
}

// Confirmation returns the projection for an order, preferring hand-off state
// carried from checkout and falling back to a backend fetch.
func (s *Service) Confirmation(ctx context.Context, orderID int64, handoff *Confirmation) (*Confirmation, error) {
	if handoff != nil {
		return handoff, nil
	}
	order, err := s.backend.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ConfirmationFromOrder(order), nil
}

// Get returns one order with detail, ownership enforced server-side.
func (s *Service) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.backend.FetchOrder(ctx, orderID)
}

// History lists the user's orders with line-item detail. The per-order detail
// fetch is a known N+1 against the backend; there is no batched endpoint to
// use instead.
func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	list, err := s.backend.FetchOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		detail, err := s.backend.FetchOrder(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Items = detail.Items
	}
	return list, nil
}

// Cancel performs a user-initiated cancellation. Only pending orders may be
// cancelled; cancelling an already-cancelled order is a no-op so repeated
// attempts never downgrade state. On success the order's status flips locally
// without a re-fetch.
func (s *Service) Cancel(ctx context.Context, order *domain.Order) error {
	switch {
	case order.Status == domain.OrderStatusCancelled:
		return nil
	case order.Status != domain.OrderStatusPending:
		return fault.Validation("only pending orders can be cancelled")
	}
	if err := s.backend.CancelOrder(ctx, order.ID); err != nil {
		return err
	}
	order.Status = domain.OrderStatusCancelled
	order.CancelledBy = domain.CancelledByUser
	return nil
}

// CancelByID looks the order up first so the terminal-state guard applies
// even when the caller only has an identifier.
func (s *Service) CancelByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.backend.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.Cancel(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
