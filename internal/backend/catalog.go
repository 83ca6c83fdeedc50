package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

func (c *Client) FetchProducts(ctx context.Context, query string, page, limit int) (*domain.ProductPage, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var out domain.ProductPage
	if err := c.do(ctx, "fetch products", http.MethodGet, "/products?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	if out.Page == 0 {
		out.Page = page
	}
	if out.Limit == 0 {
		out.Limit = limit
	}
	return &out, nil
}

func (c *Client) FetchProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, "fetch product", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
