package backend

import (
	"context"
	"fmt"
	"net/http"

	"StorefrontAPI/internal/model"
)

type cartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) GetCart(ctx context.Context, token string) ([]model.CartEntry, error) {
	var list []model.CartEntry
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddToCart returns the backend's confirmation message.
func (c *Client) AddToCart(ctx context.Context, token string, productID int64, qty int) (string, error) {
	var resp messageResponse
	req := cartItemRequest{ProductID: productID, Quantity: qty}
	if err := c.do(ctx, http.MethodPost, "/cart", token, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateCartItem sets the quantity of the line holding productID.
func (c *Client) UpdateCartItem(ctx context.Context, token string, productID int64, qty int) error {
	req := cartItemRequest{ProductID: productID, Quantity: qty}
	return c.do(ctx, http.MethodPut, "/cart", token, req, nil)
}

func (c *Client) DeleteCartItem(ctx context.Context, token string, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", productID), token, nil, nil)
}
