package services

import (
	"context"
	"log/slog"
	"strings"

	"StorefrontAPI/external/backend"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"
)

type AddressService struct {
	Backend *backend.Client
}

func NewAddressService(b *backend.Client) *AddressService {
	return &AddressService{Backend: b}
}

// ValidateAddress checks the form locally; it never calls the backend.
func ValidateAddress(in model.AddressInput) error {
	if in.AddressType == "" {
		return invalid("Please select an Address Type.")
	}
	if !in.AddressType.Valid() {
		return invalid("Invalid Address Type selected.")
	}
	required := []struct {
		name, value string
	}{
		{"House No", in.HouseNo},
		{"Road Name", in.RoadName},
		{"Pin Code", in.PinCode},
		{"City", in.City},
		{"State", in.State},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return invalid(f.name + " is required.")
		}
	}
	return nil
}

// List refreshes the cached address list.
func (s *AddressService) List(ctx context.Context, sess *model.Session, shop *state.Shopping) ([]model.Address, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("User not authenticated.", ErrNotAuthenticated)
	}
	list, err := s.Backend.ListAddresses(ctx, sess.Token)
	if err != nil {
		slog.Error("fetch addresses", slog.Any("err", err))
		return nil, fail("Failed to fetch addresses.", err)
	}
	shop.SetAddresses(list)
	return list, nil
}

// Select picks a cached address for delivery. No backend call.
func (s *AddressService) Select(shop *state.Shopping, id int64) (model.Address, error) {
	a, err := shop.SelectAddress(id)
	if err != nil {
		return model.Address{}, fail("Address not found.", ErrNotFound)
	}
	return a, nil
}

// Proceed confirms a delivery address is selected before moving to payment.
func (s *AddressService) Proceed(shop *state.Shopping) (model.Address, error) {
	a, ok := shop.SelectedAddress()
	if !ok {
		return model.Address{}, fail("Please select an address.", ErrNoAddressSelected)
	}
	return a, nil
}

// AddAndSelect creates an address from the checkout page, refetches the list
// and selects the new entry.
func (s *AddressService) AddAndSelect(ctx context.Context, sess *model.Session, shop *state.Shopping, in model.AddressInput) (model.Address, error) {
	if !sess.IsAuthenticated() {
		return model.Address{}, fail("User not authenticated.", ErrNotAuthenticated)
	}
	if err := ValidateAddress(in); err != nil {
		return model.Address{}, err
	}

	id, err := s.Backend.AddAddress(ctx, sess.Token, in)
	if err != nil {
		slog.Error("add address", slog.Any("err", err))
		return model.Address{}, remote(err, "Failed to add address. Please try again.")
	}

	list, err := s.Backend.ListAddresses(ctx, sess.Token)
	if err != nil {
		slog.Error("fetch addresses", slog.Any("err", err))
		return model.Address{}, fail("Failed to retrieve the new address. Please try again.", err)
	}
	shop.SetAddresses(list)

	a, err := shop.SelectAddress(id)
	if err != nil {
		return model.Address{}, fail("Failed to retrieve the new address. Please try again.", ErrNotFound)
	}
	return a, nil
}

// Create, Edit and Delete back the address management page. Each refetches
// the list on success.

func (s *AddressService) Create(ctx context.Context, sess *model.Session, shop *state.Shopping, in model.AddressInput) ([]model.Address, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("Authentication token missing.", ErrNotAuthenticated)
	}
	if err := ValidateAddress(in); err != nil {
		return nil, err
	}
	if _, err := s.Backend.AddAddress(ctx, sess.Token, in); err != nil {
		slog.Error("add address", slog.Any("err", err))
		return nil, fail("Failed to save address.", err)
	}
	return s.refresh(ctx, sess, shop)
}

func (s *AddressService) Edit(ctx context.Context, sess *model.Session, shop *state.Shopping, id int64, in model.AddressInput) ([]model.Address, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("Authentication token missing.", ErrNotAuthenticated)
	}
	if err := ValidateAddress(in); err != nil {
		return nil, err
	}
	if err := s.Backend.EditAddress(ctx, sess.Token, id, in); err != nil {
		slog.Error("edit address", slog.Int64("address_id", id), slog.Any("err", err))
		return nil, fail("Failed to update address.", err)
	}
	return s.refresh(ctx, sess, shop)
}

func (s *AddressService) Delete(ctx context.Context, sess *model.Session, shop *state.Shopping, id int64) ([]model.Address, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("Authentication token missing.", ErrNotAuthenticated)
	}
	if err := s.Backend.DeleteAddress(ctx, sess.Token, id); err != nil {
		slog.Error("delete address", slog.Int64("address_id", id), slog.Any("err", err))
		return nil, fail("Failed to delete address.", err)
	}
	return s.refresh(ctx, sess, shop)
}

// refresh reports a failed refetch as a failure even though the mutation
// went through; the cached list keeps its previous contents.
func (s *AddressService) refresh(ctx context.Context, sess *model.Session, shop *state.Shopping) ([]model.Address, error) {
	list, err := s.Backend.ListAddresses(ctx, sess.Token)
	if err != nil {
		slog.Error("fetch addresses", slog.Any("err", err))
		return nil, fail("Failed to fetch addresses.", err)
	}
	shop.SetAddresses(list)
	return list, nil
}
