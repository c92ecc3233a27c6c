package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"StorefrontAPI/external/backend"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"

	"golang.org/x/sync/errgroup"
)

const defaultCartFetchConcurrency = 8

type CartService struct {
	Backend     *backend.Client
	Concurrency int
}

func NewCartService(b *backend.Client, concurrency int) *CartService {
	if concurrency <= 0 {
		concurrency = defaultCartFetchConcurrency
	}
	return &CartService{Backend: b, Concurrency: concurrency}
}

// Load fetches the cart, joins every line with its product and replaces the
// local cart. The local cart is untouched on any failure.
func (s *CartService) Load(ctx context.Context, sess *model.Session, shop *state.Shopping) ([]model.CartItem, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("User not authenticated.", ErrNotAuthenticated)
	}

	entries, err := s.Backend.GetCart(ctx, sess.Token)
	if err != nil {
		slog.Error("fetch cart", slog.Any("err", err))
		return nil, fail("Failed to load cart items. Please try again later.", err)
	}

	items := make([]model.CartItem, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, e := range entries {
		g.Go(func() error {
			p, err := s.Backend.GetProduct(gctx, e.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", e.ProductID, err)
			}
			items[i] = model.CartItem{
				ID:           e.ID,
				ProductID:    e.ProductID,
				ProductName:  p.Name,
				ProductPrice: p.Price,
				Quantity:     e.Quantity,
				Discount:     e.Discount,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("enrich cart", slog.Any("err", err))
		return nil, fail("Failed to load cart items. Please try again later.", err)
	}

	shop.SetCartItems(items)
	return items, nil
}

func (s *CartService) Increase(ctx context.Context, sess *model.Session, shop *state.Shopping, itemID int64) error {
	return s.adjust(ctx, sess, shop, itemID, 1)
}

// Decrease never takes a line below one; use Delete to drop it.
func (s *CartService) Decrease(ctx context.Context, sess *model.Session, shop *state.Shopping, itemID int64) error {
	return s.adjust(ctx, sess, shop, itemID, -1)
}

func (s *CartService) adjust(ctx context.Context, sess *model.Session, shop *state.Shopping, itemID int64, delta int) error {
	item, ok := shop.FindCartItem(itemID)
	if !ok || !sess.IsAuthenticated() {
		return nil
	}
	qty := item.Quantity + delta
	if qty < 1 {
		return nil
	}

	if err := s.Backend.UpdateCartItem(ctx, sess.Token, item.ProductID, qty); err != nil {
		slog.Error("update cart item", slog.Int64("product_id", item.ProductID), slog.Any("err", err))
		return fail("Failed to update item quantity. Please try again.", err)
	}
	shop.AdjustQuantity(itemID, delta)
	return nil
}

func (s *CartService) Delete(ctx context.Context, sess *model.Session, shop *state.Shopping, itemID int64) error {
	item, ok := shop.FindCartItem(itemID)
	if !ok || !sess.IsAuthenticated() {
		return nil
	}

	if err := s.Backend.DeleteCartItem(ctx, sess.Token, item.ProductID); err != nil {
		slog.Error("delete cart item", slog.Int64("product_id", item.ProductID), slog.Any("err", err))
		return fail("Failed to delete item. Please try again.", err)
	}
	shop.RemoveCartItem(itemID)
	return nil
}

// Add puts qty of productID in the cart and merges it into the local cart.
// It returns the backend's confirmation message.
func (s *CartService) Add(ctx context.Context, sess *model.Session, shop *state.Shopping, productID int64, qty int) (string, error) {
	if !sess.IsAuthenticated() {
		return "", fail("Please log in to add items to the cart.", ErrNotAuthenticated)
	}
	if qty < 1 {
		return "", invalid("Quantity must be at least 1.")
	}

	p, err := s.Backend.GetProduct(ctx, productID)
	if err != nil {
		if backend.IsStatus(err, http.StatusNotFound) {
			return "", fail("Product not found.", ErrNotFound)
		}
		return "", remote(err, "Failed to add to cart.")
	}

	msg, err := s.Backend.AddToCart(ctx, sess.Token, productID, qty)
	if err != nil {
		slog.Error("add to cart", slog.Int64("product_id", productID), slog.Any("err", err))
		return "", remote(err, "Failed to add to cart.")
	}

	shop.MergeCartItem(model.CartItem{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductPrice: p.Price,
		Quantity:     qty,
	})
	return msg, nil
}
