package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"StorefrontAPI/external/backend"
	mt "StorefrontAPI/external/midtrans"
	st "StorefrontAPI/external/stripe"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"

	"github.com/google/uuid"
)

var ErrInvalidSignature = errors.New("invalid signature")

// PaymentGateway opens an online payment for an accepted order. The returned
// payload is stored with the payment record.
type PaymentGateway interface {
	Open(ctx context.Context, req model.PaymentRequest) (*model.PaymentSession, []byte, error)
}

type PaymentStore interface {
	CreatePending(ctx context.Context, p *model.Payment) error
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	MarkStatus(ctx context.Context, reference, status string, payload []byte) (bool, error)
}

type PaymentService struct {
	Backend           *backend.Client
	Payments          PaymentStore
	Gateways          map[string]PaymentGateway // keyed by payment method
	MidtransServerKey string

	// StripeWebhookSecret verifies card payment events; without it they are
	// all rejected.
	StripeWebhookSecret string

	// Mailer, when set, sends a confirmation to the contact email of every
	// accepted order.
	Mailer OrderMailer
}

func NewPaymentService(b *backend.Client, store PaymentStore, midtransServerKey string) *PaymentService {
	return &PaymentService{
		Backend:           b,
		Payments:          store,
		Gateways:          map[string]PaymentGateway{},
		MidtransServerKey: midtransServerKey,
	}
}

// UseGateway routes the given payment methods to gw.
func (s *PaymentService) UseGateway(gw PaymentGateway, methods ...string) {
	for _, m := range methods {
		s.Gateways[m] = gw
	}
}

type CheckoutResult struct {
	Message  string                `json:"message"`
	Redirect string                `json:"redirect"`
	Payment  *model.PaymentSession `json:"payment,omitempty"`

	// PaymentError is set when the order went through but the online
	// payment could not be opened.
	PaymentError string `json:"payment_error,omitempty"`
}

// Summary is what the payment screen shows before submission.
type Summary struct {
	Address  model.Address      `json:"address"`
	Contact  model.OrderContact `json:"contact"`
	Items    []model.CartItem   `json:"items"`
	Totals   CartTotals         `json:"-"`
	Methods  []string           `json:"payment_methods"`
	Gateways []string           `json:"online_methods"`
}

func contactOf(sess *model.Session) model.OrderContact {
	return model.OrderContact{
		FullName:     sess.FullName,
		MobileNumber: sess.MobileNumber,
		Email:        sess.Email,
	}
}

func (s *PaymentService) Summary(sess *model.Session, shop *state.Shopping) (*Summary, error) {
	addr, ok := shop.SelectedAddress()
	if !ok {
		return nil, fail("Please select an address.", ErrNoAddressSelected)
	}
	items := shop.CartItems()
	sum := &Summary{
		Address: addr,
		Contact: contactOf(sess),
		Items:   items,
		Totals:  Totals(items),
		Methods: model.PaymentMethods,
	}
	for _, m := range model.PaymentMethods {
		if _, ok := s.Gateways[m]; ok {
			sum.Gateways = append(sum.Gateways, m)
		}
	}
	return sum, nil
}

// Submit places the order for the local cart and selected address. The cart
// is left as is on success and on failure.
func (s *PaymentService) Submit(ctx context.Context, sess *model.Session, shop *state.Shopping, method string) (*CheckoutResult, error) {
	if method == "" {
		return nil, invalid("Please select a payment method.")
	}
	if !model.ValidPaymentMethod(method) {
		return nil, invalid("Invalid payment method selected.")
	}
	if !sess.IsAuthenticated() {
		return nil, fail("User not authenticated.", ErrNotAuthenticated)
	}
	addr, ok := shop.SelectedAddress()
	if !ok {
		return nil, fail("Please select an address.", ErrNoAddressSelected)
	}
	if !shop.BeginSubmit() {
		return nil, fail("Your order is already being processed.", ErrSubmitInProgress)
	}
	defer shop.EndSubmit()

	items := shop.CartItems()
	req := model.OrderRequest{
		PaymentMethod: method,
		AddressID:     addr.ID,
		Items:         make([]model.OrderRequestItem, 0, len(items)),
		User:          contactOf(sess),
	}
	for _, it := range items {
		req.Items = append(req.Items, model.OrderRequestItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Discount:  it.Discount,
		})
	}

	msg, err := s.Backend.CreateOrder(ctx, sess.Token, req)
	if err != nil {
		slog.Error("create order", slog.Any("err", err))
		return nil, remote(err, "There was an issue processing your order. Please try again.")
	}

	res := &CheckoutResult{Message: msg, Redirect: "/confirmation"}
	s.sendConfirmation(ctx, sess, addr, method, items)

	gw, online := s.Gateways[method]
	if !online || len(items) == 0 {
		return res, nil
	}
	ps, err := s.openPayment(ctx, sess, gw, method, Totals(items))
	if err != nil {
		slog.Error("open payment", slog.String("method", method), slog.Any("err", err))
		res.PaymentError = "Your order was placed but the payment could not be started. Please try again."
		return res, nil
	}
	res.Payment = ps
	return res, nil
}

func (s *PaymentService) sendConfirmation(ctx context.Context, sess *model.Session, addr model.Address, method string, items []model.CartItem) {
	if s.Mailer == nil || sess.Email == "" {
		return
	}
	if err := s.Mailer.SendOrderConfirmation(ctx, sess.Email, confirmationFor(sess, addr, method, items)); err != nil {
		slog.Error("send order confirmation", slog.Any("err", err))
	}
}

func (s *PaymentService) openPayment(ctx context.Context, sess *model.Session, gw PaymentGateway, method string, totals CartTotals) (*model.PaymentSession, error) {
	ref := "ORDER-" + uuid.NewString()

	ps, payload, err := gw.Open(ctx, model.PaymentRequest{
		Reference: ref,
		Method:    method,
		Amount:    totals.Total,
		Contact:   contactOf(sess),
	})
	if err != nil {
		return nil, err
	}

	err = s.Payments.CreatePending(ctx, &model.Payment{
		Reference:       ref,
		SessionID:       sess.ID,
		Provider:        ps.Provider,
		Method:          method,
		Amount:          totals.Total.StringFixed(2),
		ProviderPayload: payload,
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// HandleMidtransNotification verifies a Snap HTTP notification and settles
// the matching pending payment.
func (s *PaymentService) HandleMidtransNotification(ctx context.Context, payload map[string]interface{}) error {
	orderID, ok := payload["order_id"].(string)
	if !ok || orderID == "" {
		return invalid("missing order_id")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if s.MidtransServerKey == "" || !mt.VerifySignature(orderID, statusCode, grossAmount, signature, s.MidtransServerKey) {
		return fail("invalid signature", ErrInvalidSignature)
	}

	existing, err := s.Payments.GetByReference(ctx, orderID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fail("unknown payment reference", ErrNotFound)
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	var status string
	switch transactionStatus {
	case "settlement":
		status = model.PaymentStatusPaid
	case "capture":
		if fraudStatus == "accept" {
			status = model.PaymentStatusPaid
		}
	case "expire", "cancel", "deny":
		status = model.PaymentStatusFailed
	}
	if status == "" {
		return nil
	}

	raw, _ := json.Marshal(payload)
	return s.settle(ctx, existing, status, raw)
}

// HandleStripeEvent verifies a Stripe webhook delivery and settles the card
// payment its PaymentIntent belongs to.
func (s *PaymentService) HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error {
	if s.StripeWebhookSecret == "" {
		return fail("invalid signature", ErrInvalidSignature)
	}
	ev, err := st.ParseEvent(payload, sigHeader, s.StripeWebhookSecret)
	if errors.Is(err, st.ErrNoReference) {
		return invalid("missing payment reference")
	}
	if err != nil {
		return fail("invalid signature", ErrInvalidSignature)
	}
	if ev.Status == "" {
		return nil
	}

	existing, err := s.Payments.GetByReference(ctx, ev.Reference)
	if err != nil {
		return err
	}
	if existing == nil {
		return fail("unknown payment reference", ErrNotFound)
	}
	return s.settle(ctx, existing, ev.Status, ev.Payload)
}

func (s *PaymentService) settle(ctx context.Context, p *model.Payment, status string, raw []byte) error {
	changed, err := s.Payments.MarkStatus(ctx, p.Reference, status, raw)
	if err != nil {
		return err
	}
	if !changed {
		// already settled; providers retry deliveries
		slog.Info("payment notification ignored", slog.String("reference", p.Reference), slog.String("status", p.Status))
	}
	return nil
}
