package backend

import (
	"context"
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

type cartEnvelope struct {
	Cart []domain.CartLine `json:"cart"`
}

func (c *Client) FetchCart(ctx context.Context) ([]domain.CartLine, error) {
	var out cartEnvelope
	if err := c.do(ctx, "fetch cart", http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

// AddToCart sets the absolute quantity for a product. The backend's add
// endpoint is idempotent by contract with this gateway, not incremental.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) ([]domain.CartLine, error) {
	var out cartEnvelope
	err := c.do(ctx, "add to cart", http.MethodPost, "/cart/add", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Cart, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int64) ([]domain.CartLine, error) {
	var out cartEnvelope
	err := c.do(ctx, "remove from cart", http.MethodPost, "/cart/remove", map[string]any{
		"product_id": productID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Cart, nil
}
