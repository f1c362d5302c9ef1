package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus represents the payment state of a purchase. Only paid
// purchases count toward ticket allocation and sold-ticket totals, so a
// half-committed purchase stuck in pending never blocks a number.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Purchase represents a completed ticket purchase. Tickets holds the numbers
// assigned to this purchase, pairwise disjoint from every other paid
// purchase's tickets for the same raffle. Immutable once paid.
type Purchase struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	RaffleID      primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	Tickets       []int              `bson:"tickets" json:"tickets"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	BonusBoxes    int                `bson:"bonusBoxes" json:"bonusBoxes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// PurchaseCreateRequest is the payload for POST /purchases
type PurchaseCreateRequest struct {
	UserID   string `json:"userId" binding:"required"`
	RaffleID string `json:"raffleId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gte=1"`
}
