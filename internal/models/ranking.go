package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BuyerRanking is one row of the top-buyers leaderboard, aggregated over
// paid purchases and enriched with the buyer's phone and display name.
type BuyerRanking struct {
	UserID       primitive.ObjectID `bson:"_id" json:"userId"`
	TotalTickets int                `bson:"totalTickets" json:"totalTickets"`
	TotalSpent   float64            `bson:"totalSpent" json:"totalSpent"`
	UserPhone    string             `bson:"-" json:"userPhone,omitempty"`
	UserName     string             `bson:"-" json:"userName,omitempty"`
}

// Stats is the aggregate counters payload for GET /stats
type Stats struct {
	TotalRaffles   int64 `json:"totalRaffles"`
	ActiveRaffles  int64 `json:"activeRaffles"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalPurchases int64 `json:"totalPurchases"`
}
