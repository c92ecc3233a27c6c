package stripe

import (
	"context"
	"encoding/json"

	"StorefrontAPI/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

const Provider = "stripe"

var paisePerRupee = decimal.NewFromInt(100)

// CardGateway opens Stripe PaymentIntents for card payments.
type CardGateway struct {
	sc *client.API
}

func NewCardGateway(secretKey string) *CardGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &CardGateway{sc: sc}
}

// AmountInPaise converts rupees to the smallest currency unit Stripe expects.
func AmountInPaise(amount decimal.Decimal) int64 {
	return amount.Mul(paisePerRupee).Round(0).IntPart()
}

func (g *CardGateway) Open(ctx context.Context, req model.PaymentRequest) (*model.PaymentSession, []byte, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(AmountInPaise(req.Amount)),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Contact.Email != "" {
		params.ReceiptEmail = stripe.String(req.Contact.Email)
	}
	params.Context = ctx
	params.AddMetadata("reference", req.Reference)

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, nil, err
	}

	payload, _ := json.Marshal(struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	}{pi.ID, string(pi.Status), pi.Amount})

	return &model.PaymentSession{
		Provider:     Provider,
		Reference:    req.Reference,
		ClientSecret: pi.ClientSecret,
	}, payload, nil
}
