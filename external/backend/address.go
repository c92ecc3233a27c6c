package backend

import (
	"context"
	"fmt"
	"net/http"

	"StorefrontAPI/internal/model"
)

type addAddressResponse struct {
	Message   string `json:"message"`
	AddressID int64  `json:"address_id"`
}

func (c *Client) ListAddresses(ctx context.Context, token string) ([]model.Address, error) {
	var list []model.Address
	if err := c.do(ctx, http.MethodGet, "/address", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddAddress returns the id of the created address.
func (c *Client) AddAddress(ctx context.Context, token string, in model.AddressInput) (int64, error) {
	var resp addAddressResponse
	if err := c.do(ctx, http.MethodPost, "/address", token, in, &resp); err != nil {
		return 0, err
	}
	return resp.AddressID, nil
}

func (c *Client) EditAddress(ctx context.Context, token string, id int64, in model.AddressInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/address/%d", id), token, in, nil)
}

func (c *Client) DeleteAddress(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/address/%d", id), token, nil, nil)
}
