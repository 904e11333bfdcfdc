package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Sizes       SizeList           `bson:"sizes" json:"sizes"`
	InStock     bool               `bson:"-" json:"inStock"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
