package services

import (
	"context"
	"sync"
	"testing"

	"github.com/mega12/raffle-backend/internal/allocation"
	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"github.com/mega12/raffle-backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type purchaseFixture struct {
	userRepo     *memory.UserRepository
	raffleRepo   *memory.RaffleRepository
	purchaseRepo *memory.PurchaseRepository
	service      *PurchaseService
	user         *models.User
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	f := &purchaseFixture{
		userRepo:     memory.NewUserRepository(),
		raffleRepo:   memory.NewRaffleRepository(),
		purchaseRepo: memory.NewPurchaseRepository(),
	}
	f.service = NewPurchaseService(f.purchaseRepo, f.raffleRepo, f.userRepo)

	f.user = &models.User{Phone: "+5511999990001", Name: "Ana"}
	require.NoError(t, f.userRepo.Create(context.Background(), f.user))
	return f
}

func (f *purchaseFixture) createRaffle(t *testing.T, totalTickets int, price float64, tiers []models.BonusTier) *models.Raffle {
	t.Helper()
	raffle := &models.Raffle{
		Title:          "Mega Prize",
		PricePerTicket: price,
		TotalTickets:   totalTickets,
		Status:         models.RaffleStatusActive,
		BonusBoxes:     tiers,
	}
	require.NoError(t, f.raffleRepo.Create(context.Background(), raffle))
	return raffle
}

func TestPurchaseHappyPath(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 100, 2.5, []models.BonusTier{{Quantity: 10, Boxes: 1}})

	purchase, err := f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, purchase.Quantity)
	assert.Len(t, purchase.Tickets, 10)
	assert.Equal(t, 25.0, purchase.TotalAmount)
	assert.Equal(t, 1, purchase.BonusBoxes)
	assert.Equal(t, models.PaymentStatusPaid, purchase.PaymentStatus)

	updated, err := f.raffleRepo.FindByID(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.SoldTickets)

	buyer, err := f.userRepo.FindByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, buyer.TotalSpent)
}

func TestPurchaseRaffleNotFound(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.service.Purchase(context.Background(), f.user.ID, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrRaffleNotFound)
}

func TestPurchaseRejectsInvalidQuantity(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 10, 1, nil)

	_, err := f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 0)
	assert.Error(t, err)
}

func TestPurchaseInsufficientSupply(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 5, 1, nil)

	_, err := f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 6)
	require.ErrorIs(t, err, allocation.ErrInsufficientSupply)

	// A rejected purchase leaves no state behind.
	updated, err := f.raffleRepo.FindByID(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.SoldTickets)
	purchases, err := f.purchaseRepo.FindByUserID(context.Background(), f.user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestPurchaseDisjointAcrossCalls(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 2000, 1, nil)

	first, err := f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 3)
	require.NoError(t, err)

	second, err := f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 347)
	require.NoError(t, err)
	require.Len(t, second.Tickets, 347)

	seen := make(map[int]bool)
	for _, n := range first.Tickets {
		seen[n] = true
	}
	for _, n := range second.Tickets {
		assert.False(t, seen[n], "ticket %d sold twice", n)
		seen[n] = true
	}

	updated, err := f.raffleRepo.FindByID(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 350, updated.SoldTickets)
}

func TestPurchaseConcurrentBuyersExhaustPool(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 10, 1, nil)

	var wg sync.WaitGroup
	results := make([]*models.Purchase, 10)
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 1)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		require.NoError(t, errs[i])
		require.Len(t, results[i].Tickets, 1)
		n := results[i].Tickets[0]
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)
		assert.False(t, seen[n], "ticket %d sold twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, 10)

	updated, err := f.raffleRepo.FindByID(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.SoldTickets)

	// The pool is exhausted; the next purchase must be rejected.
	_, err = f.service.Purchase(context.Background(), f.user.ID, raffle.ID, 1)
	assert.ErrorIs(t, err, allocation.ErrInsufficientSupply)
}

// conflictingRaffleRepo fails the first failures conditional updates with
// ErrConflict, simulating sold-ticket commits lost to another process.
type conflictingRaffleRepo struct {
	repositories.RaffleRepository
	mu       sync.Mutex
	failures int
}

func (r *conflictingRaffleRepo) IncrementSoldTickets(ctx context.Context, id primitive.ObjectID, by int, expectedSold int) error {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return repositories.ErrConflict
	}
	r.mu.Unlock()
	return r.RaffleRepository.IncrementSoldTickets(ctx, id, by, expectedSold)
}

func TestPurchaseRetriesAfterConflict(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 100, 1, nil)

	conflicting := &conflictingRaffleRepo{RaffleRepository: f.raffleRepo, failures: 2}
	service := NewPurchaseService(f.purchaseRepo, conflicting, f.userRepo)

	purchase, err := service.Purchase(context.Background(), f.user.ID, raffle.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, purchase.PaymentStatus)

	updated, err := f.raffleRepo.FindByID(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.SoldTickets)

	// The two rolled-back pending attempts must not linger.
	purchases, err := f.purchaseRepo.FindByUserID(context.Background(), f.user.ID, 10)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, models.PaymentStatusPaid, purchases[0].PaymentStatus)
}

func TestPurchaseSurfacesExhaustedConflicts(t *testing.T) {
	f := newPurchaseFixture(t)
	raffle := f.createRaffle(t, 100, 1, nil)

	conflicting := &conflictingRaffleRepo{RaffleRepository: f.raffleRepo, failures: maxCommitAttempts}
	service := NewPurchaseService(f.purchaseRepo, conflicting, f.userRepo)

	_, err := service.Purchase(context.Background(), f.user.ID, raffle.ID, 4)
	require.ErrorIs(t, err, ErrTooManyConflicts)

	// Every attempt rolled back cleanly.
	updated, err := f.raffleRepo.FindByID(context.Background(), raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.SoldTickets)
	purchases, err := f.purchaseRepo.FindByUserID(context.Background(), f.user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestPurchasesAgainstDifferentRafflesAreIndependent(t *testing.T) {
	f := newPurchaseFixture(t)
	first := f.createRaffle(t, 10, 1, nil)
	second := f.createRaffle(t, 10, 1, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.service.Purchase(context.Background(), f.user.ID, first.ID, 10)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.service.Purchase(context.Background(), f.user.ID, second.ID, 10)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
}
