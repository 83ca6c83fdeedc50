package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

// Admin passthroughs. Authorization is the backend's job; the gateway only
// gates these behind the single admin role flag.

func (c *Client) AdminCreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, "create product", http.MethodPost, "/admin/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateProduct(ctx context.Context, p domain.Product) error {
	path := fmt.Sprintf("/admin/products/%d", p.ID)
	return c.do(ctx, "update product", http.MethodPut, path, p, nil)
}

func (c *Client) AdminDeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/products/%d", id)
	return c.do(ctx, "delete product", http.MethodDelete, path, nil, nil)
}

func (c *Client) AdminFetchOrders(ctx context.Context) ([]domain.Order, error) {
	var out ordersEnvelope
	if err := c.do(ctx, "fetch all orders", http.MethodGet, "/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) AdminFetchOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out orderEnvelope
	path := fmt.Sprintf("/admin/orders/%d", id)
	if err := c.do(ctx, "fetch order", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	order := out.Order
	order.Items = out.Items
	return &order, nil
}

func (c *Client) AdminUpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	path := fmt.Sprintf("/admin/orders/%d/status", id)
	return c.do(ctx, "update order status", http.MethodPatch, path, map[string]string{
		"status": status.String(),
	}, nil)
}

type usersEnvelope struct {
	Users []domain.Identity `json:"users"`
}

func (c *Client) AdminFetchUsers(ctx context.Context) ([]domain.Identity, error) {
	var out usersEnvelope
	if err := c.do(ctx, "fetch users", http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) AdminUpdateUserRole(ctx context.Context, id int64, role string) error {
	path := fmt.Sprintf("/admin/users/%d/role", id)
	return c.do(ctx, "update user role", http.MethodPatch, path, map[string]string{
		"role": role,
	}, nil)
}
