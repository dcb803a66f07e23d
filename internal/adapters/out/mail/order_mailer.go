// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain/order"
)

// EmailClient is the transport behind the mailer (SendGridClient in prod).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer formats and sends the checkout confirmation. It implements
// usecase.ConfirmationSender.
type OrderMailer struct {
	Client EmailClient
	From   string
}

func NewOrderMailer(client EmailClient, from string) *OrderMailer {
	return &OrderMailer{Client: client, From: strings.TrimSpace(from)}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, toEmail, toName string, orders []order.Order) error {
	if m == nil || m.Client == nil {
		return errors.New("order_mailer: email client is nil")
	}
	if len(orders) == 0 {
		return errors.New("order_mailer: no orders")
	}

	subject := "Your order is confirmed"
	if len(orders) > 1 {
		subject = fmt.Sprintf("Your %d orders are confirmed", len(orders))
	}
	return m.Client.Send(ctx, m.From, toEmail, subject, confirmationBody(toName, orders))
}

func confirmationBody(toName string, orders []order.Order) string {
	var b strings.Builder

	name := strings.TrimSpace(toName)
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your purchase! We received the following:\n", name)

	for _, o := range orders {
		fmt.Fprintf(&b, "\nOrder %s (seller %s)\n", o.ID, o.SellerID)
		for _, q := range o.Quantities() {
			fmt.Fprintf(&b, "  - %s x%d\n", q.ItemID, q.Qty)
		}
	}
	b.WriteString("\nWe'll let each seller know right away. You can track the status on your orders page.\n")
	return b.String()
}
