package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func sign(parts ...string) string {
	var raw string
	for _, p := range parts {
		raw += p
	}
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func TestVerifySignature(t *testing.T) {
	const key = "SB-Mid-server-test"
	good := sign("ORDER-1", "200", "15000.00", key)

	tests := []struct {
		name        string
		orderID     string
		statusCode  string
		grossAmount string
		signature   string
		want        bool
	}{
		{"valid", "ORDER-1", "200", "15000.00", good, true},
		{"tampered amount", "ORDER-1", "200", "1.00", good, false},
		{"tampered status", "ORDER-1", "201", "15000.00", good, false},
		{"other order", "ORDER-2", "200", "15000.00", good, false},
		{"empty signature", "ORDER-1", "200", "15000.00", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifySignature(tt.orderID, tt.statusCode, tt.grossAmount, tt.signature, key); got != tt.want {
				t.Fatalf("VerifySignature = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnabledPayments(t *testing.T) {
	if got := enabledPayments("Card"); got != nil {
		t.Fatalf("cards are not routed through Snap, got %v", got)
	}
	if got := enabledPayments("NetBanking"); len(got) != 1 || got[0] != "bank_transfer" {
		t.Fatalf("unexpected net banking channels %v", got)
	}
}
