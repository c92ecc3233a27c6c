package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCard       = "Card"
	PaymentUPI        = "UPI"
	PaymentNetBanking = "NetBanking"
	PaymentWallet     = "Wallet"
)

// PaymentMethods lists the methods offered on the payment screen, in display order.
var PaymentMethods = []string{PaymentCard, PaymentUPI, PaymentNetBanking, PaymentWallet}

func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// Payment is a row of the payments table; one per online payment attempt.
type Payment struct {
	Reference       string     `db:"reference" json:"reference"`
	SessionID       string     `db:"session_id" json:"-"`
	Provider        string     `db:"provider" json:"provider"`
	Method          string     `db:"method" json:"method"`
	Amount          string     `db:"amount" json:"amount"`
	Status          string     `db:"status" json:"status"`
	ProviderPayload []byte     `db:"provider_payload" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// PaymentSession is what the browser needs to continue an online payment.
type PaymentSession struct {
	Provider     string `json:"provider"`
	Reference    string `json:"reference"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// PaymentRequest asks a gateway to open a payment for an accepted order.
type PaymentRequest struct {
	Reference string
	Method    string
	Amount    decimal.Decimal // rupees
	Contact   OrderContact
}
