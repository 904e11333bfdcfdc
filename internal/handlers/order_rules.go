package handlers

import (
	"fmt"
	"strings"

	"sambhai-backend/internal/models"
)

type cancellationResult struct {
	RefundAmount float64
	RefundStatus string
}

// resolveCancellation applies the user-cancel policy: only orders that are not
// already shipped or cancelled may be cancelled. UPI payments get a pending
// refund; everything else was never charged, so the refund is marked N/A.
func resolveCancellation(status, paymentMethod string, amount float64) (cancellationResult, error) {
	switch status {
	case models.StatusShipped:
		return cancellationResult{}, fmt.Errorf("cannot cancel a shipped order")
	case models.StatusCancelledByUser:
		return cancellationResult{}, fmt.Errorf("order is already cancelled")
	}

	result := cancellationResult{RefundStatus: models.PaymentNA}
	if strings.Contains(strings.ToUpper(paymentMethod), "UPI") {
		result.RefundAmount = amount
		result.RefundStatus = models.PaymentPending
	}
	return result, nil
}

// initialPaymentStatus decides how a freshly placed order starts out: online
// methods stay pending until the provider confirms settlement, cash on
// delivery has nothing to confirm.
func initialPaymentStatus(paymentMethod string) string {
	upper := strings.ToUpper(paymentMethod)
	for _, marker := range []string{"UPI", "CARD", "ONLINE", "STRIPE", "RAZORPAY"} {
		if strings.Contains(upper, marker) {
			return models.PaymentPending
		}
	}
	return models.PaymentNA
}
