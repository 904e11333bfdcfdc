package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/mongo"
)

type razorpayOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

type razorpayVerifyRequest struct {
	OrderID           string `json:"orderId" binding:"required"`
	RazorpayOrderID   string `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string `json:"razorpaySignature" binding:"required"`
}

// CreateRazorpayOrder forwards amount and currency to Razorpay and returns the
// provider order handle the client widget needs.
func CreateRazorpayOrder(keyID, keySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payment/razorpay/order"
		defer handlePanic(c, route)

		if keyID == "" || keySecret == "" {
			respondWithError(c, http.StatusServiceUnavailable, route, "razorpay is not configured")
			return
		}

		var req razorpayOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		currency := strings.ToUpper(strings.TrimSpace(req.Currency))
		if currency == "" {
			currency = "INR"
		}

		client := razorpay.NewClient(keyID, keySecret)
		data := map[string]interface{}{
			"amount":   int64(math.Round(req.Amount * 100)),
			"currency": currency,
			"receipt":  "rcpt_" + uuid.NewString(),
		}

		providerOrder, err := client.Order.Create(data, nil)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] razorpay order create failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "payment provider error")
			return
		}

		log.Println("[PAYMENT] [INFO] razorpay order created:", providerOrder["id"])
		c.JSON(http.StatusOK, gin.H{
			"orderId":  providerOrder["id"],
			"amount":   providerOrder["amount"],
			"currency": providerOrder["currency"],
			"keyId":    keyID,
		})
	}
}

// VerifyRazorpayPayment checks the payment signature the widget returned and
// only then marks the order paid. The signature is HMAC-SHA256 of
// "<razorpay order id>|<payment id>" keyed with the API secret.
func VerifyRazorpayPayment(db *mongo.Database, keySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payment/razorpay/verify"
		defer handlePanic(c, route)

		if keySecret == "" {
			respondWithError(c, http.StatusServiceUnavailable, route, "razorpay is not configured")
			return
		}

		var req razorpayVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !verifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, keySecret) {
			log.Println("[PAYMENT] [ERROR] razorpay signature mismatch for order:", req.OrderID)
			respondWithError(c, http.StatusBadRequest, route, "signature verification failed")
			return
		}

		if err := markOrderPaid(c.Request.Context(), db, req.OrderID, req.RazorpayPaymentID); err != nil {
			log.Println("[PAYMENT] [ERROR] mark order paid failed:", err)
			respondWithError(c, http.StatusBadRequest, route, "order not found")
			return
		}

		log.Println("[PAYMENT] [INFO] order marked paid via razorpay:", req.OrderID)
		c.JSON(http.StatusOK, gin.H{"message": "payment verified"})
	}
}

func verifyRazorpaySignature(razorpayOrderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(razorpayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}
