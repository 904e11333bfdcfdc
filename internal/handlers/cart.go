package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sambhai-backend/internal/models"
)

type addCartItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

type updateCartItemRequest struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func cartUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userIDValue, ok := c.Get("userId")
	if !ok {
		log.Println("[CART] [ERROR] userId missing in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	return userIDValue.(primitive.ObjectID), true
}

// loadCart fetches the user's cart document. A missing document is a valid
// empty cart; any other error is surfaced so callers never overwrite a cart
// they could not read.
func loadCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{}, err
	}
	cart.UserID = userID
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

func saveCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, items []models.CartItem) error {
	_, err := db.Collection("carts").UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"items":     items,
			"updatedAt": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := cartUserID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			log.Println("[CART] [ERROR] load cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": cart.Items,
			"total": cartTotal(cart.Items),
		})
	}
}

// AddToCart merges the posted line into the user's cart by (productId, size).
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := cartUserID(c)
		if !ok {
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quantity := req.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		item := models.CartItem{
			ProductID: strings.TrimSpace(req.ProductID),
			Title:     strings.TrimSpace(req.Title),
			Price:     req.Price,
			Image:     strings.TrimSpace(req.Image),
			Size:      strings.TrimSpace(req.Size),
			Quantity:  quantity,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			log.Println("[CART] [ERROR] load cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		cart.Items = mergeCartItem(cart.Items, item)

		if err := saveCart(ctx, db, userID, cart.Items); err != nil {
			log.Println("[CART] [ERROR] save cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": cart.Items,
			"total": cartTotal(cart.Items),
		})
	}
}

func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := cartUserID(c)
		if !ok {
			return
		}

		productID := strings.TrimSpace(c.Param("productId"))
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			log.Println("[CART] [ERROR] load cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		items, found := setCartQuantity(cart.Items, productID, strings.TrimSpace(req.Size), req.Quantity)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}

		if err := saveCart(ctx, db, userID, items); err != nil {
			log.Println("[CART] [ERROR] save cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": cartTotal(items),
		})
	}
}

func RemoveFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := cartUserID(c)
		if !ok {
			return
		}

		productID := strings.TrimSpace(c.Param("productId"))
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}
		size := strings.TrimSpace(c.Query("size"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			log.Println("[CART] [ERROR] load cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		items, found := removeCartItem(cart.Items, productID, size)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}

		if err := saveCart(ctx, db, userID, items); err != nil {
			log.Println("[CART] [ERROR] save cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": cartTotal(items),
		})
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := cartUserID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := saveCart(ctx, db, userID, []models.CartItem{}); err != nil {
			log.Println("[CART] [ERROR] clear cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
