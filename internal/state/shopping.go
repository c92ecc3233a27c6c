// Package state holds the per-session shopping state: cart lines, the cached
// address list and the selected address. Services mutate it only after the
// corresponding backend call has succeeded.
package state

import (
	"errors"
	"sync"
	"time"

	"StorefrontAPI/internal/model"
)

var ErrAddressNotFound = errors.New("address not found")

type Shopping struct {
	mu sync.Mutex

	cartItems  []model.CartItem
	addresses  []model.Address
	selectedID int64 // 0 means nothing selected
	submitting bool
	lastSeen   time.Time
	localSeq   int64 // last id handed to a line added locally, counting down from -1
}

func NewShopping() *Shopping {
	return &Shopping{lastSeen: time.Now()}
}

func (s *Shopping) markSeen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
}

func (s *Shopping) touch() {
	s.lastSeen = time.Now()
}

// CartItems returns a copy of the cart lines.
func (s *Shopping) CartItems() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CartItem, len(s.cartItems))
	copy(out, s.cartItems)
	return out
}

func (s *Shopping) SetCartItems(items []model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartItems = append([]model.CartItem(nil), items...)
	s.touch()
}

// FindCartItem looks a line up by its cart item id.
func (s *Shopping) FindCartItem(id int64) (model.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.cartItems {
		if it.ID == id {
			return it, true
		}
	}
	return model.CartItem{}, false
}

// AdjustQuantity adds delta to the line's quantity. It reports false when the
// line is gone.
func (s *Shopping) AdjustQuantity(id int64, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cartItems {
		if s.cartItems[i].ID == id {
			s.cartItems[i].Quantity += delta
			s.touch()
			return true
		}
	}
	return false
}

func (s *Shopping) RemoveCartItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cartItems[:0]
	for _, it := range s.cartItems {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.cartItems = kept
	s.touch()
}

// MergeCartItem adds item.Quantity to the existing line for the same product,
// or appends item as a new line. A new line without an id gets a negative one
// that is unique within this state and never clashes with backend ids.
func (s *Shopping) MergeCartItem(item model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cartItems {
		if s.cartItems[i].ProductID == item.ProductID {
			s.cartItems[i].Quantity += item.Quantity
			s.touch()
			return
		}
	}
	if item.ID == 0 {
		s.localSeq--
		item.ID = s.localSeq
	}
	s.cartItems = append(s.cartItems, item)
	s.touch()
}

func (s *Shopping) Addresses() []model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Address, len(s.addresses))
	copy(out, s.addresses)
	return out
}

// SetAddresses replaces the cached list. A selection that is no longer in the
// list is dropped.
func (s *Shopping) SetAddresses(list []model.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses = append([]model.Address(nil), list...)
	if _, ok := s.findAddress(s.selectedID); !ok {
		s.selectedID = 0
	}
	s.touch()
}

func (s *Shopping) findAddress(id int64) (model.Address, bool) {
	if id == 0 {
		return model.Address{}, false
	}
	for _, a := range s.addresses {
		if a.ID == id {
			return a, true
		}
	}
	return model.Address{}, false
}

// SelectAddress sets the selection to id; id must be in the cached list.
func (s *Shopping) SelectAddress(id int64) (model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.findAddress(id)
	if !ok {
		return model.Address{}, ErrAddressNotFound
	}
	s.selectedID = id
	s.touch()
	return a, nil
}

// SelectedAddress resolves the selection against the cached list.
func (s *Shopping) SelectedAddress() (model.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.findAddress(s.selectedID)
	if !ok {
		s.selectedID = 0
	}
	return a, ok
}

// BeginSubmit marks a checkout submission in flight. It returns false if one
// already is.
func (s *Shopping) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *Shopping) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// idleSince also reports whether the state holds nothing worth keeping.
func (s *Shopping) idleSince(now time.Time) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return 0, false
	}
	return now.Sub(s.lastSeen), len(s.cartItems) == 0 && len(s.addresses) == 0
}
