package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem mirrors the browser cart line: a product snapshot keyed by
// (productId, size).
type CartItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Cart is the server-side copy of a logged-in user's cart, one document per
// user.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
