package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure RaffleRepository implements the interface
var _ repositories.RaffleRepository = (*RaffleRepository)(nil)

// RaffleRepository handles MongoDB operations for Raffle
type RaffleRepository struct {
	collection *mongo.Collection
}

// NewRaffleRepository creates a new RaffleRepository
func NewRaffleRepository(db *mongo.Database) *RaffleRepository {
	return &RaffleRepository{
		collection: db.Collection("raffles"),
	}
}

// Create inserts a new raffle
func (r *RaffleRepository) Create(ctx context.Context, raffle *models.Raffle) error {
	raffle.ID = primitive.NewObjectID()
	raffle.CreatedAt = time.Now()
	raffle.UpdatedAt = time.Now()
	if raffle.Status == "" {
		raffle.Status = models.RaffleStatusActive
	}
	if raffle.Prizes == nil {
		raffle.Prizes = []models.Prize{}
	}
	if raffle.BonusBoxes == nil {
		raffle.BonusBoxes = []models.BonusTier{}
	}
	_, err := r.collection.InsertOne(ctx, raffle)
	return err
}

// FindByID finds a raffle by ID
func (r *RaffleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	var raffle models.Raffle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raffle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &raffle, nil
}

// FindByStatus retrieves raffles with the given status, newest first
func (r *RaffleRepository) FindByStatus(ctx context.Context, status models.RaffleStatus, limit int64) ([]*models.Raffle, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raffles []*models.Raffle
	if err = cursor.All(ctx, &raffles); err != nil {
		return nil, err
	}
	if raffles == nil {
		raffles = []*models.Raffle{}
	}
	return raffles, nil
}

// IncrementSoldTickets adds by to soldTickets only if the counter still holds
// expectedSold. A zero match count means another purchase committed first;
// the caller gets ErrConflict and restarts its read-allocate-commit sequence.
func (r *RaffleRepository) IncrementSoldTickets(ctx context.Context, id primitive.ObjectID, by int, expectedSold int) error {
	filter := bson.M{"_id": id, "soldTickets": expectedSold}
	update := bson.M{
		"$inc": bson.M{"soldTickets": by},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing raffle from a lost race.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return repositories.ErrNotFound
		}
		return repositories.ErrConflict
	}
	return nil
}

// Count returns the total number of raffles
func (r *RaffleRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the number of raffles with the given status
func (r *RaffleRepository) CountByStatus(ctx context.Context, status models.RaffleStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}
