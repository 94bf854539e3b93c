package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"shop-kart/internal/model"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(`
<h2>Order {{.ID}}</h2>
<p>Status: {{.Status}} | Payment: {{.PaymentMethod}}</p>
<p>Customer: {{.Customer.Name}} ({{.Customer.Phone}})<br>{{.Customer.FullAddress}}</p>
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>Item</th><th>SKU</th><th>Qty</th><th>Unit</th><th>Total</th></tr>
  {{range .Items}}
  <tr><td>{{.Name}}</td><td>{{.SKU}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .UnitPrice}}</td><td>{{printf "%.2f" .TotalPrice}}</td></tr>
  {{end}}
</table>
<p>Subtotal: {{printf "%.2f" .Subtotal}}<br>
Shipping: {{printf "%.2f" .ShippingCost}}<br>
<strong>Total: {{printf "%.2f" .Total}}</strong></p>
`))

// RenderInvoice renders the admin invoice email for an order.
func RenderInvoice(order *model.Order) (Message, error) {
	var sb strings.Builder
	if err := invoiceTmpl.Execute(&sb, order); err != nil {
		return Message{}, fmt.Errorf("failed to render invoice: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("New order %s", order.ID),
		HTML:    sb.String(),
	}, nil
}

// RenderStatusChange renders the admin email for a cancel or refund.
func RenderStatusChange(order *model.Order, action string) Message {
	return Message{
		Subject: fmt.Sprintf("Order %s %s", order.ID, action),
		Text: fmt.Sprintf("Order %s has been %s. %d item(s) restocked, total %.2f.",
			order.ID, action, len(order.Items), order.Total),
	}
}
