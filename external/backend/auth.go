package backend

import (
	"context"
	"net/http"

	"StorefrontAPI/internal/model"
)

type loginRequest struct {
	Identifier string `json:"identifier"` // username or email
	Password   string `json:"password"`
}

func (c *Client) Register(ctx context.Context, data model.RegisterUserData) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", data, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Login(ctx context.Context, identifier, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	req := loginRequest{Identifier: identifier, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProfile(ctx context.Context, token string) (*model.UserProfile, error) {
	var p model.UserProfile
	if err := c.do(ctx, http.MethodGet, "/profile", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, p model.UserProfile) error {
	return c.do(ctx, http.MethodPut, "/profile", token, p, nil)
}
