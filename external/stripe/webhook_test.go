package stripe

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"StorefrontAPI/internal/model"

	"github.com/stripe/stripe-go/v78/webhook"
)

const testSecret = "whsec_test"

func event(kind, reference string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_1",
  "object": "event",
  "type": %q,
  "data": {"object": {"id": "pi_1", "object": "payment_intent", "metadata": {"reference": %q}}}
}`, kind, reference))
}

func sign(payload []byte, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	}).Header
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		ref    string
		status string
	}{
		{"succeeded", "payment_intent.succeeded", "ORDER-1", model.PaymentStatusPaid},
		{"failed", "payment_intent.payment_failed", "ORDER-2", model.PaymentStatusFailed},
		{"canceled", "payment_intent.canceled", "ORDER-3", model.PaymentStatusFailed},
		{"other event", "payment_intent.created", "ORDER-4", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := event(tt.kind, tt.ref)
			got, err := ParseEvent(payload, sign(payload, testSecret), testSecret)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != tt.status {
				t.Fatalf("status = %q, want %q", got.Status, tt.status)
			}
			if tt.status != "" && got.Reference != tt.ref {
				t.Fatalf("reference = %q, want %q", got.Reference, tt.ref)
			}
		})
	}

	payload := event("payment_intent.succeeded", "ORDER-1")
	if _, err := ParseEvent(payload, sign(payload, "whsec_other"), testSecret); err == nil {
		t.Fatal("an event signed with another secret must be rejected")
	}

	payload = event("payment_intent.succeeded", "")
	if _, err := ParseEvent(payload, sign(payload, testSecret), testSecret); !errors.Is(err, ErrNoReference) {
		t.Fatalf("expected ErrNoReference, got %v", err)
	}
}
