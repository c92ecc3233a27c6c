package services

import (
	"testing"

	"StorefrontAPI/internal/model"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"5", "₹5.00"},
		{"999.999", "₹1,000.00"},
		{"1000", "₹1,000.00"},
		{"99999.5", "₹99,999.50"},
		{"123456.5", "₹1,23,456.50"},
		{"12345678.9", "₹1,23,45,678.90"},
		{"-1500", "-₹1,500.00"},
		{"-0.001", "₹0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatPrice(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Fatalf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	items := []model.CartItem{
		{ProductPrice: 0.1, Quantity: 3, Discount: 0.5},
		{ProductPrice: 38990, Quantity: 2, Discount: 0.25},
	}
	got := Totals(items)
	if got.Total.String() != "77980.3" {
		t.Fatalf("total = %s", got.Total)
	}
	if got.Savings.String() != "19495.15" {
		t.Fatalf("savings = %s", got.Savings)
	}
	if got.Items != 5 {
		t.Fatalf("items = %d", got.Items)
	}

	if empty := Totals(nil); !empty.Total.IsZero() || FormatPrice(empty.Total) != "₹0.00" {
		t.Fatalf("empty cart total = %s", empty.Total)
	}
}

func TestOriginalPriceAndPercent(t *testing.T) {
	orig, ok := OriginalPrice(model.CartItem{ProductPrice: 750, Discount: 0.25})
	if !ok || !orig.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("OriginalPrice = %s, %v", orig, ok)
	}
	if _, ok := OriginalPrice(model.CartItem{ProductPrice: 750}); ok {
		t.Fatal("no original price without a discount")
	}
	if got := DiscountPercent(0.125); got != 13 {
		t.Fatalf("DiscountPercent(0.125) = %d", got)
	}
}
