package services

import (
	"context"

	"StorefrontAPI/internal/model"
)

// OrderMailer sends the confirmation for an order the backend accepted.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, c model.OrderConfirmation) error
}

func confirmationFor(sess *model.Session, addr model.Address, method string, items []model.CartItem) model.OrderConfirmation {
	c := model.OrderConfirmation{
		FullName:      sess.FullName,
		PaymentMethod: method,
		Total:         FormatPrice(Totals(items).Total),
		Address:       addr,
		Lines:         make([]model.ConfirmationLine, 0, len(items)),
	}
	for _, it := range items {
		c.Lines = append(c.Lines, model.ConfirmationLine{
			Name:     it.ProductName,
			Quantity: it.Quantity,
			Price:    FormatFloat(it.ProductPrice),
		})
	}
	return c
}
