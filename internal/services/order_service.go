package services

import (
	"context"
	"log/slog"

	"StorefrontAPI/external/backend"
	"StorefrontAPI/internal/model"
)

type OrderService struct {
	Backend *backend.Client
}

func NewOrderService(b *backend.Client) *OrderService {
	return &OrderService{Backend: b}
}

// List returns the caller's orders in backend order.
func (s *OrderService) List(ctx context.Context, sess *model.Session) ([]model.Order, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("User not authenticated.", ErrNotAuthenticated)
	}
	orders, err := s.Backend.ListOrders(ctx, sess.Token)
	if err != nil {
		slog.Error("fetch orders", slog.Any("err", err))
		return nil, fail("Failed to fetch orders.", err)
	}
	return orders, nil
}
