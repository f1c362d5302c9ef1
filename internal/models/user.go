package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a buyer in the system. Users are keyed by phone number:
// creating a user with an existing phone returns the existing record.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Phone      string             `bson:"phone" json:"phone"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	TotalSpent float64            `bson:"totalSpent" json:"totalSpent"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserCreateRequest is the payload for POST /users
type UserCreateRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}
