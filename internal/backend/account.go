package backend

import (
	"context"
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

func (c *Client) FetchShippingProfile(ctx context.Context) (*domain.ShippingProfile, error) {
	var out domain.ShippingProfile
	if err := c.do(ctx, "fetch shipping address", http.MethodGet, "/users/me/shipping", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShippingProfile(ctx context.Context, profile domain.ShippingProfile) error {
	return c.do(ctx, "update shipping address", http.MethodPut, "/users/me/shipping", profile, nil)
}
