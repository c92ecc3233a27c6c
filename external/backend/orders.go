package backend

import (
	"context"
	"net/http"

	"StorefrontAPI/internal/model"
)

func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var list []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateOrder submits a checkout and returns the backend's message.
func (c *Client) CreateOrder(ctx context.Context, token string, req model.OrderRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/orders", token, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
