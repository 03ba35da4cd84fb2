package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dealer is the tenant root. Every other entity belongs to exactly one dealer.
type Dealer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DealerID     string             `bson:"dealerId" json:"dealerId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	TokenHash    string             `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterDealerInput opens a new dealer account.
type RegisterDealerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginInput authenticates an existing dealer.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
