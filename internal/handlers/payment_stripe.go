package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sambhai-backend/internal/models"
)

type checkoutItemRequest struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type checkoutSessionRequest struct {
	Items      []checkoutItemRequest `json:"items"`
	OrderID    string                `json:"orderId"`
	SuccessURL string                `json:"success_url"`
	CancelURL  string                `json:"cancel_url"`
}

// buildLineItems maps cart items to Stripe line items. Prices are rupees on
// the wire and paise at the provider; quantity defaults to 1.
func buildLineItems(items []checkoutItemRequest) ([]*stripe.CheckoutSessionLineItemParams, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("No items provided")
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		if item.Price < 0 {
			return nil, fmt.Errorf("invalid price for %q", item.Title)
		}
		quantity := int64(item.Quantity)
		if quantity < 1 {
			quantity = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("inr"),
				UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
			},
			Quantity: stripe.Int64(quantity),
		})
	}
	return lineItems, nil
}

// CreateCheckoutSession forwards the cart to Stripe Checkout and returns the
// hosted payment URL.
func CreateCheckoutSession(secretKey, successURL, cancelURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /create-checkout-session"
		defer handlePanic(c, route)

		if secretKey == "" {
			respondWithError(c, http.StatusServiceUnavailable, route, "stripe is not configured")
			return
		}

		var req checkoutSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		lineItems, err := buildLineItems(req.Items)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		success := strings.TrimSpace(req.SuccessURL)
		if success == "" {
			success = successURL
		}
		cancel := strings.TrimSpace(req.CancelURL)
		if cancel == "" {
			cancel = cancelURL
		}

		stripe.Key = secretKey
		params := &stripe.CheckoutSessionParams{
			Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
			LineItems:          lineItems,
			SuccessURL:         stripe.String(success),
			CancelURL:          stripe.String(cancel),
		}
		if orderID := strings.TrimSpace(req.OrderID); orderID != "" {
			params.AddMetadata("orderId", orderID)
		}

		sess, err := session.New(params)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] stripe session create failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Internal server error")
			return
		}

		log.Println("[PAYMENT] [INFO] checkout session created:", sess.ID)
		c.JSON(http.StatusOK, gin.H{"url": sess.URL})
	}
}

// StripeWebhook verifies the event signature and marks the referenced order
// paid on checkout completion. Settlement is confirmed here, not by the
// client's success callback.
func StripeWebhook(db *mongo.Database, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payment/stripe/webhook"
		defer handlePanic(c, route)

		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid payload")
			return
		}

		event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), webhookSecret)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] stripe webhook signature verification failed:", err)
			respondWithError(c, http.StatusBadRequest, route, "signature verification failed")
			return
		}

		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid event data")
			return
		}

		orderID := sess.Metadata["orderId"]
		if orderID == "" {
			log.Println("[PAYMENT] [WARN] checkout session completed without orderId metadata:", sess.ID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if err := markOrderPaid(c.Request.Context(), db, orderID, sess.ID); err != nil {
			log.Println("[PAYMENT] [ERROR] mark order paid failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[PAYMENT] [INFO] order marked paid via stripe:", orderID)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func markOrderPaid(ctx context.Context, db *mongo.Database, orderIDHex, paymentID string) error {
	orderID, err := primitive.ObjectIDFromHex(orderIDHex)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderIDHex, err)
	}

	updateCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := db.Collection("orders").UpdateByID(updateCtx, orderID, bson.M{
		"$set": bson.M{
			"paymentStatus": models.PaymentPaid,
			"paymentId":     paymentID,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order not found: %s", orderIDHex)
	}
	return nil
}
