package models

// PrizeType distinguishes cash prizes from physical products
type PrizeType string

const (
	PrizeTypeMoney   PrizeType = "money"
	PrizeTypeProduct PrizeType = "product"
)

// Prize defines a single prize attached to a raffle
type Prize struct {
	Name        string    `bson:"name" json:"name"`
	Value       float64   `bson:"value" json:"value"`
	Type        PrizeType `bson:"type" json:"type"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
}
