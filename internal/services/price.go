package services

import (
	"strings"

	"StorefrontAPI/internal/model"

	"github.com/shopspring/decimal"
)

const rupee = "₹"

// FormatPrice renders amount as rupees with Indian digit grouping and two
// decimals, e.g. ₹1,23,456.50.
func FormatPrice(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	if amount.Round(2).IsZero() {
		s = "0.00"
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	out := rupee + groupIndian(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

func FormatFloat(amount float64) string {
	return FormatPrice(decimal.NewFromFloat(amount))
}

// groupIndian groups the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

type CartTotals struct {
	Total   decimal.Decimal
	Savings decimal.Decimal
	Items   int
}

// Totals sums price*quantity and the discount share of it over the cart.
func Totals(items []model.CartItem) CartTotals {
	var t CartTotals
	for _, it := range items {
		price := decimal.NewFromFloat(it.ProductPrice)
		qty := decimal.NewFromInt(int64(it.Quantity))
		line := price.Mul(qty)
		t.Total = t.Total.Add(line)
		t.Savings = t.Savings.Add(line.Mul(decimal.NewFromFloat(it.Discount)))
		t.Items += it.Quantity
	}
	return t
}

// OriginalPrice is the undiscounted unit price shown struck through next to
// a discounted line. ok is false when there is no discount to show.
func OriginalPrice(it model.CartItem) (decimal.Decimal, bool) {
	if it.Discount <= 0 || it.Discount >= 1 {
		return decimal.Zero, false
	}
	one := decimal.NewFromInt(1)
	return decimal.NewFromFloat(it.ProductPrice).Div(one.Sub(decimal.NewFromFloat(it.Discount))), true
}

// DiscountPercent rounds the discount fraction to whole percent.
func DiscountPercent(d float64) int64 {
	return decimal.NewFromFloat(d).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
