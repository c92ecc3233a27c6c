package midtrans

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"

	"StorefrontAPI/internal/model"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const Provider = "midtrans"

// SnapGateway opens Snap payment pages for UPI, net banking and wallets.
type SnapGateway struct {
	client *snap.Client
}

func NewSnapClient(serverKey string, env midtrans.EnvironmentType) *snap.Client {
	var client snap.Client

	client.New(serverKey, env)

	return &client
}

func NewSnapGateway(serverKey string, production bool) *SnapGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	return &SnapGateway{client: NewSnapClient(serverKey, env)}
}

func enabledPayments(method string) []snap.SnapPaymentType {
	switch method {
	case model.PaymentNetBanking:
		return []snap.SnapPaymentType{snap.PaymentTypeBankTransfer}
	case model.PaymentWallet:
		return []snap.SnapPaymentType{snap.PaymentTypeGopay, snap.PaymentTypeShopeepay}
	case model.PaymentUPI:
		return []snap.SnapPaymentType{snap.SnapPaymentType("other_qris")}
	}
	return nil
}

// Open creates a Snap transaction. The returned payload is the raw Snap
// response, kept with the payment record.
func (g *SnapGateway) Open(_ context.Context, req model.PaymentRequest) (*model.PaymentSession, []byte, error) {
	sreq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.Reference,
			GrossAmt: req.Amount.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Contact.FullName,
			Email: req.Contact.Email,
			Phone: req.Contact.MobileNumber,
		},
		EnabledPayments: enabledPayments(req.Method),
	}

	resp, snapErr := g.client.CreateTransaction(sreq)
	if snapErr != nil {
		return nil, nil, snapErr
	}

	payload, _ := json.Marshal(resp)

	return &model.PaymentSession{
		Provider:    Provider,
		Reference:   req.Reference,
		RedirectURL: resp.RedirectURL,
	}, payload, nil
}

// VerifySignature checks the signature_key of an HTTP notification:
// SHA-512 of order_id + status_code + gross_amount + server key, hex encoded.
func VerifySignature(
	orderID string,
	statusCode string,
	grossAmount string,
	signature string,
	serverKey string,
) bool {

	raw := orderID + statusCode + grossAmount + serverKey
	hash := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(hash[:])

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
