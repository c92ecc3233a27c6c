package backend

import (
	"context"
	"fmt"
	"net/http"

	"StorefrontAPI/internal/model"
)

type createProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var list []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct returns the id assigned by the backend.
func (c *Client) CreateProduct(ctx context.Context, token string, p model.Product) (int64, error) {
	var resp createProductResponse
	if err := c.do(ctx, http.MethodPost, "/products", token, p, &resp); err != nil {
		return 0, err
	}
	return resp.ProductID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, p model.Product) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), token, p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}
