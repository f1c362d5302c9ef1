package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner records a drawn winner. Append-only; the winning number is recorded
// as announced and is not re-validated against the raffle's sold tickets.
type Winner struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	UserPhone     string             `bson:"userPhone" json:"userPhone"`
	RaffleID      primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	RaffleTitle   string             `bson:"raffleTitle" json:"raffleTitle"`
	PrizeName     string             `bson:"prizeName" json:"prizeName"`
	WinningNumber int                `bson:"winningNumber" json:"winningNumber"`
	Date          time.Time          `bson:"date" json:"date"`
}

// WinnerCreateRequest is the payload for POST /winners
type WinnerCreateRequest struct {
	UserID        string `json:"userId" binding:"required"`
	UserPhone     string `json:"userPhone" binding:"required"`
	RaffleID      string `json:"raffleId" binding:"required"`
	RaffleTitle   string `json:"raffleTitle" binding:"required"`
	PrizeName     string `json:"prizeName" binding:"required"`
	WinningNumber int    `json:"winningNumber" binding:"required,gte=1"`
}
