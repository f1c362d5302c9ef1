package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleStatus represents the lifecycle status of a raffle
type RaffleStatus string

const (
	RaffleStatusActive    RaffleStatus = "active"
	RaffleStatusCompleted RaffleStatus = "completed"
	RaffleStatusCancelled RaffleStatus = "cancelled"
)

// BonusTier is a purchase-size reward rule: buying at least Quantity tickets
// in one purchase awards Boxes bonus boxes. A purchase is matched against the
// highest qualifying tier only; tiers do not stack.
type BonusTier struct {
	Quantity int `bson:"quantity" json:"quantity"`
	Boxes    int `bson:"boxes" json:"boxes"`
}

// Raffle represents a sellable pool of numbered tickets 1..TotalTickets.
// SoldTickets equals the sum of quantities of all paid purchases for the
// raffle; it is mutated only by successful purchases, via a conditional
// update guarded by its previous value.
type Raffle struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	ImageURL       string             `bson:"imageUrl" json:"imageUrl"`
	PricePerTicket float64            `bson:"pricePerTicket" json:"pricePerTicket"`
	TotalTickets   int                `bson:"totalTickets" json:"totalTickets"`
	SoldTickets    int                `bson:"soldTickets" json:"soldTickets"`
	DrawDate       *time.Time         `bson:"drawDate,omitempty" json:"drawDate,omitempty"`
	Status         RaffleStatus       `bson:"status" json:"status"`
	Prizes         []Prize            `bson:"prizes" json:"prizes"`
	BonusBoxes     []BonusTier        `bson:"bonusBoxes" json:"bonusBoxes"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RaffleCreateRequest is the payload for POST /raffles
type RaffleCreateRequest struct {
	Title          string      `json:"title" binding:"required"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"imageUrl"`
	PricePerTicket float64     `json:"pricePerTicket" binding:"required,gt=0"`
	TotalTickets   int         `json:"totalTickets" binding:"required,gte=1"`
	DrawDate       *time.Time  `json:"drawDate"`
	Prizes         []Prize     `json:"prizes"`
	BonusBoxes     []BonusTier `json:"bonusBoxes"`
}
