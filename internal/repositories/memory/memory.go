// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the MongoDB implementations' semantics, including
// the conditional sold-ticket update, and back the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository is an in-memory UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

// NewUserRepository creates a new in-memory UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// FindByPhone finds a user by phone number
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// IncrementTotalSpent adds amount to the user's lifetime spend
func (r *UserRepository) IncrementTotalSpent(ctx context.Context, id primitive.ObjectID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.TotalSpent += amount
	user.UpdatedAt = time.Now()
	return nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

var _ repositories.RaffleRepository = (*RaffleRepository)(nil)

// RaffleRepository is an in-memory RaffleRepository
type RaffleRepository struct {
	mu      sync.RWMutex
	raffles map[primitive.ObjectID]*models.Raffle
}

// NewRaffleRepository creates a new in-memory RaffleRepository
func NewRaffleRepository() *RaffleRepository {
	return &RaffleRepository{raffles: make(map[primitive.ObjectID]*models.Raffle)}
}

// Create inserts a new raffle
func (r *RaffleRepository) Create(ctx context.Context, raffle *models.Raffle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raffle.ID = primitive.NewObjectID()
	raffle.CreatedAt = time.Now()
	raffle.UpdatedAt = time.Now()
	if raffle.Status == "" {
		raffle.Status = models.RaffleStatusActive
	}
	clone := *raffle
	r.raffles[raffle.ID] = &clone
	return nil
}

// FindByID finds a raffle by ID
func (r *RaffleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raffle, ok := r.raffles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *raffle
	return &clone, nil
}

// FindByStatus retrieves raffles with the given status
func (r *RaffleRepository) FindByStatus(ctx context.Context, status models.RaffleStatus, limit int64) ([]*models.Raffle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raffles := []*models.Raffle{}
	for _, raffle := range r.raffles {
		if raffle.Status == status && int64(len(raffles)) < limit {
			clone := *raffle
			raffles = append(raffles, &clone)
		}
	}
	return raffles, nil
}

// IncrementSoldTickets adds by to soldTickets only if the counter still
// equals expectedSold, mirroring the MongoDB conditional update
func (r *RaffleRepository) IncrementSoldTickets(ctx context.Context, id primitive.ObjectID, by int, expectedSold int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raffle, ok := r.raffles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if raffle.SoldTickets != expectedSold {
		return repositories.ErrConflict
	}
	raffle.SoldTickets += by
	raffle.UpdatedAt = time.Now()
	return nil
}

// Count returns the total number of raffles
func (r *RaffleRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.raffles)), nil
}

// CountByStatus returns the number of raffles with the given status
func (r *RaffleRepository) CountByStatus(ctx context.Context, status models.RaffleStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, raffle := range r.raffles {
		if raffle.Status == status {
			count++
		}
	}
	return count, nil
}

var _ repositories.PurchaseRepository = (*PurchaseRepository)(nil)

// PurchaseRepository is an in-memory PurchaseRepository
type PurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[primitive.ObjectID]*models.Purchase
}

// NewPurchaseRepository creates a new in-memory PurchaseRepository
func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{purchases: make(map[primitive.ObjectID]*models.Purchase)}
}

// Create inserts a new purchase
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	purchase.ID = primitive.NewObjectID()
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	clone := *purchase
	r.purchases[purchase.ID] = &clone
	return nil
}

// Delete removes a purchase by ID
func (r *PurchaseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.purchases, id)
	return nil
}

// UpdatePaymentStatus sets the payment status of a purchase
func (r *PurchaseRepository) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	purchase, ok := r.purchases[id]
	if !ok {
		return repositories.ErrNotFound
	}
	purchase.PaymentStatus = status
	return nil
}

// FindByUserID retrieves a user's purchases, newest first
func (r *PurchaseRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	purchases := []*models.Purchase{}
	for _, purchase := range r.purchases {
		if purchase.UserID == userID {
			clone := *purchase
			purchases = append(purchases, &clone)
		}
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].CreatedAt.After(purchases[j].CreatedAt)
	})
	if int64(len(purchases)) > limit {
		purchases = purchases[:limit]
	}
	return purchases, nil
}

// FindPaidByRaffleID retrieves all paid purchases for a raffle
func (r *PurchaseRepository) FindPaidByRaffleID(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	purchases := []*models.Purchase{}
	for _, purchase := range r.purchases {
		if purchase.RaffleID == raffleID && purchase.PaymentStatus == models.PaymentStatusPaid {
			clone := *purchase
			purchases = append(purchases, &clone)
		}
	}
	return purchases, nil
}

// PaidTicketNumbers returns the union of ticket numbers across paid
// purchases for the raffle
func (r *PurchaseRepository) PaidTicketNumbers(ctx context.Context, raffleID primitive.ObjectID) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	numbers := []int{}
	for _, purchase := range r.purchases {
		if purchase.RaffleID == raffleID && purchase.PaymentStatus == models.PaymentStatusPaid {
			numbers = append(numbers, purchase.Tickets...)
		}
	}
	return numbers, nil
}

// TopBuyers aggregates paid purchases into the top buyers by ticket count
func (r *PurchaseRepository) TopBuyers(ctx context.Context, since time.Time, limit int64) ([]*models.BuyerRanking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byUser := make(map[primitive.ObjectID]*models.BuyerRanking)
	for _, purchase := range r.purchases {
		if purchase.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		if !since.IsZero() && purchase.CreatedAt.Before(since) {
			continue
		}
		ranking, ok := byUser[purchase.UserID]
		if !ok {
			ranking = &models.BuyerRanking{UserID: purchase.UserID}
			byUser[purchase.UserID] = ranking
		}
		ranking.TotalTickets += purchase.Quantity
		ranking.TotalSpent += purchase.TotalAmount
	}

	rankings := []*models.BuyerRanking{}
	for _, ranking := range byUser {
		rankings = append(rankings, ranking)
	}
	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].TotalTickets > rankings[j].TotalTickets
	})
	if int64(len(rankings)) > limit {
		rankings = rankings[:limit]
	}
	return rankings, nil
}

// CountPaid returns the number of paid purchases
func (r *PurchaseRepository) CountPaid(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, purchase := range r.purchases {
		if purchase.PaymentStatus == models.PaymentStatusPaid {
			count++
		}
	}
	return count, nil
}

var _ repositories.WinnerRepository = (*WinnerRepository)(nil)

// WinnerRepository is an in-memory WinnerRepository
type WinnerRepository struct {
	mu      sync.RWMutex
	winners []*models.Winner
}

// NewWinnerRepository creates a new in-memory WinnerRepository
func NewWinnerRepository() *WinnerRepository {
	return &WinnerRepository{}
}

// Create appends a winner record
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	winner.ID = primitive.NewObjectID()
	if winner.Date.IsZero() {
		winner.Date = time.Now()
	}
	clone := *winner
	r.winners = append(r.winners, &clone)
	return nil
}

// FindRecent retrieves the most recent winners, newest first
func (r *WinnerRepository) FindRecent(ctx context.Context, limit int64) ([]*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	winners := make([]*models.Winner, 0, len(r.winners))
	for _, winner := range r.winners {
		clone := *winner
		winners = append(winners, &clone)
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Date.After(winners[j].Date)
	})
	if int64(len(winners)) > limit {
		winners = winners[:limit]
	}
	return winners, nil
}
