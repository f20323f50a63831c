package mail

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"techstore/internal/domain"

	"gopkg.in/gomail.v2"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<h2>Thank you for your order, {{.CustomerName}}!</h2>
<p>Your order <strong>{{.OrderNumber}}</strong> has been confirmed.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Product</th><th>Qty</th><th>Unit price</th><th>Subtotal</th></tr>
  {{range .OrderItems}}
  <tr>
    <td>{{.ProductName}}</td>
    <td>{{.Quantity}}</td>
    <td>${{.ProductPrice.StringFixed 2}}</td>
    <td>${{.Subtotal.StringFixed 2}}</td>
  </tr>
  {{end}}
</table>
<p><strong>Total: ${{.TotalAmount.StringFixed 2}}</strong></p>
<p>The invoice is attached. You can track your order with its number at any time.</p>
`))

// SMTPMailer sends order confirmations with the invoice attached.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	pdf, err := BuildInvoicePDF(order)
	if err != nil {
		return fmt.Errorf("failed to build invoice: %w", err)
	}

	var body strings.Builder
	if err := confirmationTmpl.Execute(&body, order); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Order confirmation #%s - TechStore", order.OrderNumber))
	msg.SetBody("text/html", body.String())
	msg.Attach(
		fmt.Sprintf("Invoice-%s.pdf", order.OrderNumber),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
	)

	return m.dialer.DialAndSend(msg)
}
