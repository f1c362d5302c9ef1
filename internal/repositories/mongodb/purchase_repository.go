package mongodb

import (
	"context"
	"time"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PurchaseRepository implements the interface
var _ repositories.PurchaseRepository = (*PurchaseRepository)(nil)

// PurchaseRepository handles MongoDB operations for Purchase
type PurchaseRepository struct {
	collection *mongo.Collection
}

// NewPurchaseRepository creates a new PurchaseRepository
func NewPurchaseRepository(db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{
		collection: db.Collection("purchases"),
	}
}

// Create inserts a new purchase
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	purchase.ID = primitive.NewObjectID()
	purchase.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, purchase)
	return err
}

// Delete removes a purchase by ID. Used to roll back a pending purchase
// whose sold-ticket commit lost a concurrency race.
func (r *PurchaseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// UpdatePaymentStatus sets the payment status of a purchase
func (r *PurchaseRepository) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"paymentStatus": status}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// FindByUserID retrieves a user's purchases, newest first
func (r *PurchaseRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.Purchase, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []*models.Purchase
	if err = cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}
	return purchases, nil
}

// FindPaidByRaffleID retrieves all paid purchases for a raffle
func (r *PurchaseRepository) FindPaidByRaffleID(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Purchase, error) {
	filter := bson.M{"raffleId": raffleID, "paymentStatus": models.PaymentStatusPaid}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []*models.Purchase
	if err = cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}
	return purchases, nil
}

// PaidTicketNumbers returns every ticket number committed to a paid purchase
// for the raffle, flattened with $unwind so only the numbers travel over the
// wire.
func (r *PurchaseRepository) PaidTicketNumbers(ctx context.Context, raffleID primitive.ObjectID) ([]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"raffleId": raffleID, "paymentStatus": models.PaymentStatusPaid}}},
		{{Key: "$unwind", Value: "$tickets"}},
		{{Key: "$project", Value: bson.M{"_id": 0, "ticket": "$tickets"}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Ticket int `bson:"ticket"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	numbers := make([]int, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.Ticket)
	}
	return numbers, nil
}

// TopBuyers aggregates paid purchases into the top buyers by ticket count.
// A zero since means all time; otherwise only purchases created at or after
// since are counted.
func (r *PurchaseRepository) TopBuyers(ctx context.Context, since time.Time, limit int64) ([]*models.BuyerRanking, error) {
	match := bson.M{"paymentStatus": models.PaymentStatusPaid}
	if !since.IsZero() {
		match["createdAt"] = bson.M{"$gte": since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$userId",
			"totalTickets": bson.M{"$sum": "$quantity"},
			"totalSpent":   bson.M{"$sum": "$totalAmount"},
		}}},
		{{Key: "$sort", Value: bson.M{"totalTickets": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rankings []*models.BuyerRanking
	if err = cursor.All(ctx, &rankings); err != nil {
		return nil, err
	}
	if rankings == nil {
		rankings = []*models.BuyerRanking{}
	}
	return rankings, nil
}

// CountPaid returns the number of paid purchases
func (r *PurchaseRepository) CountPaid(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"paymentStatus": models.PaymentStatusPaid})
}
