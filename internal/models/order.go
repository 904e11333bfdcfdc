package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values used by convention. The status route overwrites the
// string unconditionally; only cancellation checks the current value.
const (
	StatusProcessing      = "Processing"
	StatusShipped         = "Shipped"
	StatusDelivered       = "Delivered"
	StatusCancelledByUser = "Cancelled by User"
)

// Payment status values. Online orders stay Pending until the provider
// confirms settlement server-side.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentNA      = "N/A"
)

// OrderItem is a denormalized snapshot of a product line at checkout time.
type OrderItem struct {
	ProductID string  `bson:"productId,omitempty" json:"productId,omitempty"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
}

// OrderCustomer captures the shipping contact collected on the checkout page.
type OrderCustomer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Mobile  string `bson:"mobile" json:"mobile"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

// Order is the persisted record of a checkout submission.
type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Customer      OrderCustomer       `bson:"customer" json:"customer"`
	Items         []OrderItem         `bson:"items" json:"items"`
	Amount        float64             `bson:"amount" json:"amount"`
	PaymentMethod string              `bson:"paymentMethod" json:"paymentMethod"`
	PaymentID     string              `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentStatus string              `bson:"paymentStatus" json:"paymentStatus"`
	Status        string              `bson:"status" json:"status"`
	RefundAmount  float64             `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	RefundStatus  string              `bson:"refundStatus,omitempty" json:"refundStatus,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
