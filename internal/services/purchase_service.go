package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mega12/raffle-backend/internal/allocation"
	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRaffleNotFound is returned when a purchase references a missing raffle.
var ErrRaffleNotFound = errors.New("raffle not found")

// ErrTooManyConflicts is returned when the purchase sequence exhausted its
// retry budget losing sold-ticket commits to concurrent purchases. The
// request left no partial state and is safe to resubmit.
var ErrTooManyConflicts = errors.New("purchase conflicted too many times, try again")

// maxCommitAttempts bounds the retry loop around the conditional
// sold-tickets commit. Same-process purchases are already serialized by the
// per-raffle lock, so retries only trigger against writers in other
// processes.
const maxCommitAttempts = 3

// PurchaseService orchestrates ticket purchases: it reads the raffle and its
// assigned numbers, allocates a disjoint ticket set, computes bonus boxes and
// commits the purchase together with the sold-ticket counter.
type PurchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	raffleRepo   repositories.RaffleRepository
	userRepo     repositories.UserRepository
	allocator    *allocation.Allocator

	// One mutex per raffle so the read-allocate-commit sequence is serialized
	// per raffle while purchases against different raffles run in parallel.
	mu          sync.Mutex
	raffleLocks map[primitive.ObjectID]*sync.Mutex
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo repositories.PurchaseRepository, raffleRepo repositories.RaffleRepository, userRepo repositories.UserRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		raffleRepo:   raffleRepo,
		userRepo:     userRepo,
		allocator:    allocation.NewAllocator(),
		raffleLocks:  make(map[primitive.ObjectID]*sync.Mutex),
	}
}

func (s *PurchaseService) raffleLock(raffleID primitive.ObjectID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.raffleLocks[raffleID]
	if !ok {
		lock = &sync.Mutex{}
		s.raffleLocks[raffleID] = lock
	}
	return lock
}

// Purchase buys quantity tickets in the raffle for the user. On success the
// returned purchase is paid and holds quantity distinct ticket numbers that
// no other paid purchase of the raffle shares. It fails with
// ErrRaffleNotFound, allocation.ErrInsufficientSupply or ErrTooManyConflicts;
// in every failure case no partial state remains.
func (s *PurchaseService) Purchase(ctx context.Context, userID, raffleID primitive.ObjectID, quantity int) (*models.Purchase, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	lock := s.raffleLock(raffleID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		purchase, err := s.attemptPurchase(ctx, userID, raffleID, quantity)
		if errors.Is(err, repositories.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return purchase, nil
	}
	return nil, ErrTooManyConflicts
}

// attemptPurchase runs one full read-allocate-commit pass. A
// repositories.ErrConflict return means the conditional sold-tickets update
// lost to a concurrent writer and the whole pass must be repeated.
func (s *PurchaseService) attemptPurchase(ctx context.Context, userID, raffleID primitive.ObjectID, quantity int) (*models.Purchase, error) {
	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRaffleNotFound
		}
		return nil, fmt.Errorf("load raffle: %w", err)
	}

	assigned, err := s.purchaseRepo.PaidTicketNumbers(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("load assigned tickets: %w", err)
	}

	tickets, err := s.allocator.Allocate(raffle.TotalTickets, assigned, quantity)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		UserID:        userID,
		RaffleID:      raffleID,
		Tickets:       tickets,
		Quantity:      quantity,
		TotalAmount:   float64(quantity) * raffle.PricePerTicket,
		PaymentStatus: models.PaymentStatusPending,
		BonusBoxes:    allocation.ComputeBonus(quantity, raffle.BonusBoxes),
		CreatedAt:     time.Now(),
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}

	// The purchase stays pending, and therefore invisible to allocation,
	// until the sold-ticket counter commit succeeds.
	err = s.raffleRepo.IncrementSoldTickets(ctx, raffleID, quantity, raffle.SoldTickets)
	if err != nil {
		if delErr := s.purchaseRepo.Delete(ctx, purchase.ID); delErr != nil {
			return nil, fmt.Errorf("roll back purchase %s: %v (after: %w)", purchase.ID.Hex(), delErr, err)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRaffleNotFound
		}
		if errors.Is(err, repositories.ErrConflict) {
			return nil, repositories.ErrConflict
		}
		return nil, fmt.Errorf("commit sold tickets: %w", err)
	}

	// Payment is simulated: every committed purchase is immediately paid.
	// A real gateway would confirm through a separate entry point here.
	if err := s.purchaseRepo.UpdatePaymentStatus(ctx, purchase.ID, models.PaymentStatusPaid); err != nil {
		return nil, fmt.Errorf("mark purchase paid: %w", err)
	}
	purchase.PaymentStatus = models.PaymentStatusPaid

	if err := s.userRepo.IncrementTotalSpent(ctx, userID, purchase.TotalAmount); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("update user total spent: %w", err)
	}

	return purchase, nil
}

// GetPurchasesByUser retrieves a user's purchase history, newest first
func (s *PurchaseService) GetPurchasesByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Purchase, error) {
	return s.purchaseRepo.FindByUserID(ctx, userID, 100)
}

// GetPaidPurchasesByRaffle retrieves all paid purchases for a raffle
func (s *PurchaseService) GetPaidPurchasesByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Purchase, error) {
	return s.purchaseRepo.FindPaidByRaffleID(ctx, raffleID)
}
