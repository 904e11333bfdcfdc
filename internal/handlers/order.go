package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sambhai-backend/internal/mailer"
	"sambhai-backend/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type placeOrderItemRequest struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
}

type placeOrderRequest struct {
	Name          string                  `json:"name" binding:"required"`
	Email         string                  `json:"email" binding:"required"`
	Mobile        string                  `json:"mobile" binding:"required"`
	Address       string                  `json:"address" binding:"required"`
	City          string                  `json:"city"`
	Pincode       string                  `json:"pincode"`
	Items         []placeOrderItemRequest `json:"items"`
	Amount        float64                 `json:"amount"`
	PaymentMethod string                  `json:"paymentMethod"`
	PaymentID     string                  `json:"paymentId"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

/* =========================
   PLACE ORDER
========================= */

// PlaceOrder persists the client-assembled order document. The item list is
// stored as submitted; amounts are not recalculated and stock is not touched.
func PlaceOrder(db *mongo.Database, jwtSecret string, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/place"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			log.Println("[ORDER] [ERROR] token validation failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			items = append(items, models.OrderItem{
				ProductID: strings.TrimSpace(item.ProductID),
				Title:     strings.TrimSpace(item.Title),
				Price:     item.Price,
				Quantity:  quantity,
				Size:      strings.TrimSpace(item.Size),
			})
		}

		order := models.Order{
			UserID: userID,
			Customer: models.OrderCustomer{
				Name:    strings.TrimSpace(req.Name),
				Email:   strings.ToLower(strings.TrimSpace(req.Email)),
				Mobile:  strings.TrimSpace(req.Mobile),
				Address: strings.TrimSpace(req.Address),
				City:    strings.TrimSpace(req.City),
				Pincode: strings.TrimSpace(req.Pincode),
			},
			Items:         items,
			Amount:        req.Amount,
			PaymentMethod: strings.TrimSpace(req.PaymentMethod),
			PaymentID:     strings.TrimSpace(req.PaymentID),
			PaymentStatus: initialPaymentStatus(req.PaymentMethod),
			Status:        models.StatusProcessing,
			CreatedAt:     time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		go mail.SendOrderConfirmation(order)

		if userID != nil {
			log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		} else {
			log.Println("[ORDER] [INFO] guest order created")
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"message": "order placed",
		})
	}
}

/* =========================
   READS
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GetUserOrders looks the order history up by user id hex or, failing that, by
// the email stored on the order's customer snapshot.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := strings.TrimSpace(c.Param("identifier"))
		if identifier == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifier required"})
			return
		}

		filter := bson.M{"customer.email": strings.ToLower(identifier)}
		if userID, err := primitive.ObjectIDFromHex(identifier); err == nil {
			filter = bson.M{"userId": userID}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

/* =========================
   MUTATIONS
========================= */

// UpdateOrderStatus overwrites the status string as given. Two concurrent
// updates race with last write wins.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").UpdateByID(ctx, orderID, bson.M{
			"$set": bson.M{"status": strings.TrimSpace(req.Status)},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		log.Printf("[ORDER] [INFO] status updated: %s -> %s", orderID.Hex(), req.Status)
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}

func CancelOrder(db *mongo.Database, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		result, err := resolveCancellation(order.Status, order.PaymentMethod, order.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{
			"status":       models.StatusCancelledByUser,
			"refundStatus": result.RefundStatus,
		}
		if result.RefundAmount > 0 {
			update["refundAmount"] = result.RefundAmount
		}

		if _, err := db.Collection("orders").UpdateByID(ctx, orderID, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		order.Status = models.StatusCancelledByUser
		order.RefundStatus = result.RefundStatus
		order.RefundAmount = result.RefundAmount
		go mail.SendCancellation(order)

		log.Println("[ORDER] [INFO] order cancelled:", orderID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message":      "order cancelled",
			"refundStatus": result.RefundStatus,
		})
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

/* =========================
   OPTIONAL AUTH
========================= */

// userIDFromHeader extracts the user id from a Bearer token when one is
// present; guests place orders without a token.
func userIDFromHeader(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return nil, errors.New("userId claim missing")
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return nil, errors.New("invalid userId")
	}

	return &userID, nil
}
