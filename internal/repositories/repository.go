package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mega12/raffle-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrConflict is returned when a conditional write loses a concurrency race
// and matched no document. The caller retries the full sequence.
var ErrConflict = errors.New("concurrent modification conflict")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	IncrementTotalSpent(ctx context.Context, id primitive.ObjectID, amount float64) error
	Count(ctx context.Context) (int64, error)
}

// RaffleRepository defines the interface for raffle data operations
type RaffleRepository interface {
	Create(ctx context.Context, raffle *models.Raffle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error)
	FindByStatus(ctx context.Context, status models.RaffleStatus, limit int64) ([]*models.Raffle, error)
	// IncrementSoldTickets adds by to the raffle's sold-ticket counter only if
	// the counter still equals expectedSold; otherwise it returns ErrConflict.
	// This is the conditional write that closes the read-allocate-commit race.
	IncrementSoldTickets(ctx context.Context, id primitive.ObjectID, by int, expectedSold int) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.RaffleStatus) (int64, error)
}

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.Purchase, error)
	FindPaidByRaffleID(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Purchase, error)
	// PaidTicketNumbers returns the union of ticket numbers across all paid
	// purchases for the raffle, the already-assigned set the allocator excludes.
	PaidTicketNumbers(ctx context.Context, raffleID primitive.ObjectID) ([]int, error)
	// TopBuyers aggregates paid purchases since the given time (zero time
	// means all time) into the top-N buyers by ticket count.
	TopBuyers(ctx context.Context, since time.Time, limit int64) ([]*models.BuyerRanking, error)
	CountPaid(ctx context.Context) (int64, error)
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindRecent(ctx context.Context, limit int64) ([]*models.Winner, error)
}
