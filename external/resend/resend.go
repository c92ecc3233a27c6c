package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"StorefrontAPI/internal/model"
)

type Mailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<p>Hi {{.FullName}},</p>
<p>Thank you for your order. Here is what you bought:</p>
<ul>
{{range .Lines}}<li>{{.Name}} &times; {{.Quantity}} ({{.Price}})</li>
{{end}}</ul>
<p>Total: <strong>{{.Total}}</strong> paid by {{.PaymentMethod}}</p>
<p>Delivering to {{.Address.HouseNo}}, {{.Address.RoadName}}, {{.Address.City}}, {{.Address.State}} - {{.Address.PinCode}}</p>
`))

func (m *Mailer) SendOrderConfirmation(ctx context.Context, toEmail string, c model.OrderConfirmation) error {
	var html bytes.Buffer
	if err := confirmationTmpl.Execute(&html, c); err != nil {
		return err
	}

	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Your order has been placed",
		HTML:    html.String(),
	}

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewReader(b),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send order confirmation: " + buf.String(),
		)
	}

	return nil
}
