package stripe

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountInPaise(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 100},
		{"45999.50", 4599950},
		{"10.005", 1001},
		{"123456.78", 12345678},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := AmountInPaise(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Fatalf("AmountInPaise(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
