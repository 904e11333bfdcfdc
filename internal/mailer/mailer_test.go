package mailer

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sambhai-backend/internal/models"
)

func sampleOrder() models.Order {
	return models.Order{
		ID: primitive.NewObjectID(),
		Customer: models.OrderCustomer{
			Name:  "Asha",
			Email: "asha@example.com",
		},
		Items: []models.OrderItem{
			{Title: "Oversized Tee", Size: "M", Price: 499, Quantity: 2},
			{Title: "Tote Bag", Price: 299, Quantity: 1},
		},
		Amount:        1297,
		PaymentMethod: "UPI",
	}
}

func TestEnabled(t *testing.T) {
	if New("", 0, "", "", "").Enabled() {
		t.Fatal("unconfigured mailer should be disabled")
	}
	if New("smtp.example.com", 587, "u", "p", "").Enabled() {
		t.Fatal("mailer without a from address should be disabled")
	}
	if !New("smtp.example.com", 587, "u", "p", "shop@example.com").Enabled() {
		t.Fatal("configured mailer should be enabled")
	}
}

func TestOrderConfirmationBodyListsItems(t *testing.T) {
	body := orderConfirmationBody(sampleOrder())

	if !strings.Contains(body, "Hi Asha") {
		t.Fatalf("missing greeting: %q", body)
	}
	if !strings.Contains(body, "Oversized Tee (M) x2 at ") {
		t.Fatalf("missing sized item line: %q", body)
	}
	if !strings.Contains(body, "Tote Bag x1 at ") {
		t.Fatalf("missing unsized item line: %q", body)
	}
	if !strings.Contains(body, "1297.00") {
		t.Fatalf("missing total: %q", body)
	}
	if !strings.Contains(body, "UPI") {
		t.Fatalf("missing payment method: %q", body)
	}
}

func TestCancellationBodyMentionsRefundOnlyWhenPending(t *testing.T) {
	order := sampleOrder()
	order.RefundStatus = models.PaymentNA
	if strings.Contains(cancellationBody(order), "refund") {
		t.Fatal("no refund line expected when refund status is N/A")
	}

	order.RefundStatus = models.PaymentPending
	order.RefundAmount = 1297
	body := cancellationBody(order)
	if !strings.Contains(body, "refund of") || !strings.Contains(body, "1297.00") {
		t.Fatalf("expected refund line with amount: %q", body)
	}
}
