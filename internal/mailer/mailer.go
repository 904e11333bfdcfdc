package mailer

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"sambhai-backend/internal/models"
)

// Mailer sends transactional mail over SMTP. When credentials are missing it
// degrades to a logged no-op so order routes never depend on mail delivery.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func New(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.host != "" && m.from != ""
}

// SendOrderConfirmation is called fire-and-forget after order placement.
// Failures are logged, never surfaced to the customer.
func (m *Mailer) SendOrderConfirmation(order models.Order) {
	if !m.Enabled() {
		log.Println("[MAIL] [INFO] mailer disabled, skipping order confirmation")
		return
	}
	subject := fmt.Sprintf("Order confirmed: #%s", order.ID.Hex())
	if err := m.send(order.Customer.Email, subject, orderConfirmationBody(order)); err != nil {
		log.Println("[MAIL] [ERROR] order confirmation failed:", err)
	}
}

func (m *Mailer) SendCancellation(order models.Order) {
	if !m.Enabled() {
		log.Println("[MAIL] [INFO] mailer disabled, skipping cancellation notice")
		return
	}
	subject := fmt.Sprintf("Order cancelled: #%s", order.ID.Hex())
	if err := m.send(order.Customer.Email, subject, cancellationBody(order)); err != nil {
		log.Println("[MAIL] [ERROR] cancellation notice failed:", err)
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("no recipient address on order")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(msg)
}

func orderConfirmationBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order! Here is what you bought:\n\n", order.Customer.Name)
	for _, item := range order.Items {
		if item.Size != "" {
			fmt.Fprintf(&b, "  - %s (%s) x%d at ₹%.2f\n", item.Title, item.Size, item.Quantity, item.Price)
		} else {
			fmt.Fprintf(&b, "  - %s x%d at ₹%.2f\n", item.Title, item.Quantity, item.Price)
		}
	}
	fmt.Fprintf(&b, "\nTotal: ₹%.2f\nPayment: %s\n\nWe will let you know when it ships.\n", order.Amount, order.PaymentMethod)
	return b.String()
}

func cancellationBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour order #%s has been cancelled.\n", order.Customer.Name, order.ID.Hex())
	if order.RefundStatus == models.PaymentPending {
		fmt.Fprintf(&b, "\nA refund of ₹%.2f will be credited within 3-5 business days.\n", order.RefundAmount)
	}
	return b.String()
}
