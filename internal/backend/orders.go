package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

type orderEnvelope struct {
	Order domain.Order       `json:"order"`
	Items []domain.OrderLine `json:"items"`
}

type ordersEnvelope struct {
	Orders []domain.Order `json:"orders"`
}

// CreateOrder commits the server-held cart into an order with the given
// shipping snapshot and payment method. The backend consumes its cart as part
// of this call.
func (c *Client) CreateOrder(ctx context.Context, shipping domain.ShippingProfile, method domain.PaymentMethod) (*domain.Order, error) {
	var out orderEnvelope
	err := c.do(ctx, "create order", http.MethodPost, "/orders", map[string]any{
		"shipping":       shipping,
		"payment_method": method,
		"currency":       "INR",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	var out ordersEnvelope
	if err := c.do(ctx, "fetch orders", http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// FetchOrder returns a single order with its line-item detail. Ownership is
// enforced server-side.
func (c *Client) FetchOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out orderEnvelope
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, "fetch order", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	order := out.Order
	if len(order.Items) == 0 {
		order.Items = out.Items
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/orders/%d/cancel", id)
	return c.do(ctx, "cancel order", http.MethodPatch, path, nil, nil)
}
