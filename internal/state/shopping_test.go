package state

import (
	"testing"
	"time"

	"StorefrontAPI/internal/model"
)

func TestSetAddressesDropsStaleSelection(t *testing.T) {
	s := NewShopping()
	s.SetAddresses([]model.Address{{ID: 1}, {ID: 2}})
	if _, err := s.SelectAddress(2); err != nil {
		t.Fatal(err)
	}

	s.SetAddresses([]model.Address{{ID: 1}})
	if _, ok := s.SelectedAddress(); ok {
		t.Fatal("selection should be cleared once the address is gone")
	}
}

func TestSelectUnknownAddress(t *testing.T) {
	s := NewShopping()
	s.SetAddresses([]model.Address{{ID: 1}})
	if _, err := s.SelectAddress(9); err != ErrAddressNotFound {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestMergeCartItem(t *testing.T) {
	s := NewShopping()
	s.MergeCartItem(model.CartItem{ID: 10, ProductID: 7, Quantity: 1})
	s.MergeCartItem(model.CartItem{ID: 11, ProductID: 7, Quantity: 2})
	s.MergeCartItem(model.CartItem{ID: 12, ProductID: 8, Quantity: 1})

	items := s.CartItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ID != 10 || items[0].Quantity != 3 {
		t.Fatalf("got %+v", items[0])
	}
}

func TestCartItemsIsACopy(t *testing.T) {
	s := NewShopping()
	s.SetCartItems([]model.CartItem{{ID: 1, Quantity: 2}})
	items := s.CartItems()
	items[0].Quantity = 99
	if it, _ := s.FindCartItem(1); it.Quantity != 2 {
		t.Fatalf("state mutated through copy: %+v", it)
	}
}

func TestBeginSubmitIsExclusive(t *testing.T) {
	s := NewShopping()
	if !s.BeginSubmit() {
		t.Fatal("first submit should start")
	}
	if s.BeginSubmit() {
		t.Fatal("second submit should be refused while the first is in flight")
	}
	s.EndSubmit()
	if !s.BeginSubmit() {
		t.Fatal("submit should start again after EndSubmit")
	}
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry()
	a := r.Get("a")
	if r.Get("a") != a {
		t.Fatal("Get must return the same state for a session")
	}
	r.Get("b")

	if n := r.Sweep(time.Now().Add(2*time.Hour), time.Hour); n != 2 {
		t.Fatalf("expected 2 swept, got %d", n)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistrySweepDropsEmptyStatesEarly(t *testing.T) {
	r := NewRegistry()
	r.Get("empty")
	r.Get("cart").SetCartItems([]model.CartItem{{ID: 1, ProductID: 7, Quantity: 2}})
	r.Get("addresses").SetAddresses([]model.Address{{ID: 3}})

	if n := r.Sweep(time.Now().Add(time.Hour), 7*24*time.Hour); n != 1 {
		t.Fatalf("expected only the empty state swept, got %d", n)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 live states, got %d", r.Len())
	}

	if n := r.Sweep(time.Now().Add(time.Minute), 7*24*time.Hour); n != 0 {
		t.Fatalf("recent states must survive, got %d swept", n)
	}
}

func TestMergeCartItemAssignsDistinctLocalIDs(t *testing.T) {
	s := NewShopping()
	s.MergeCartItem(model.CartItem{ProductID: 7, Quantity: 1})
	s.MergeCartItem(model.CartItem{ProductID: 8, Quantity: 1})
	s.MergeCartItem(model.CartItem{ProductID: 7, Quantity: 1})

	items := s.CartItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ID >= 0 || items[1].ID >= 0 || items[0].ID == items[1].ID {
		t.Fatalf("expected distinct negative ids, got %d and %d", items[0].ID, items[1].ID)
	}
	if it, ok := s.FindCartItem(items[1].ID); !ok || it.ProductID != 8 {
		t.Fatalf("FindCartItem(%d) = %+v", items[1].ID, it)
	}
	if !s.AdjustQuantity(items[1].ID, 1) {
		t.Fatal("AdjustQuantity lost the second line")
	}
	if it, _ := s.FindCartItem(items[0].ID); it.Quantity != 2 {
		t.Fatalf("first line changed by the second's adjustment: %+v", it)
	}
}
