package stripe

import (
	"encoding/json"
	"errors"

	"StorefrontAPI/internal/model"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

var ErrNoReference = errors.New("payment intent carries no reference")

// Settlement is what a PaymentIntent event means for the stored payment.
// An empty Status means the event does not settle anything.
type Settlement struct {
	Reference string
	Status    string
	Payload   []byte
}

// ParseEvent verifies the Stripe-Signature header against the endpoint
// secret and maps PaymentIntent outcomes to payment statuses.
func ParseEvent(payload []byte, sigHeader, secret string) (*Settlement, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	var status string
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		status = model.PaymentStatusPaid
	case stripe.EventTypePaymentIntentPaymentFailed, stripe.EventTypePaymentIntentCanceled:
		status = model.PaymentStatusFailed
	default:
		return &Settlement{}, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, err
	}
	ref := pi.Metadata["reference"]
	if ref == "" {
		return nil, ErrNoReference
	}
	return &Settlement{Reference: ref, Status: status, Payload: payload}, nil
}
