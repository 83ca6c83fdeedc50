// Package account manages the user's shipping profile, fetched and edited
// independently of checkout.
package account

import (
	"context"
	"strings"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

type Backend interface {
	FetchShippingProfile(ctx context.Context) (*domain.ShippingProfile, error)
	UpdateShippingProfile(ctx context.Context, profile domain.ShippingProfile) error
}

type Service struct {
	backend Backend
}

func NewService(b Backend) *Service {
	return &Service{backend: b}
}

func (s *Service) ShippingProfile(ctx context.Context) (*domain.ShippingProfile, error) {
	return s.backend.FetchShippingProfile(ctx)
}

// UpdateShippingProfile saves the address after checking the required fields,
// so checkout's completeness gate can trust what was stored.
func (s *Service) UpdateShippingProfile(ctx context.Context, profile domain.ShippingProfile) error {
	if missing := profile.MissingFields(); len(missing) > 0 {
		return fault.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}
	return s.backend.UpdateShippingProfile(ctx, profile)
}
