package services

import (
	"context"
	"testing"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecordAndListWinners(t *testing.T) {
	service := NewWinnerService(memory.NewWinnerRepository())

	first, err := service.RecordWinner(context.Background(), &models.WinnerCreateRequest{
		UserID:        primitive.NewObjectID().Hex(),
		UserPhone:     "+5511966665555",
		RaffleID:      primitive.NewObjectID().Hex(),
		RaffleTitle:   "Moto Zero KM",
		PrizeName:     "Moto",
		WinningNumber: 777,
	})
	require.NoError(t, err)
	assert.Equal(t, 777, first.WinningNumber)
	assert.False(t, first.Date.IsZero())

	winners, err := service.GetRecentWinners(context.Background())
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Moto", winners[0].PrizeName)
}

func TestRecordWinnerRejectsMalformedIDs(t *testing.T) {
	service := NewWinnerService(memory.NewWinnerRepository())

	_, err := service.RecordWinner(context.Background(), &models.WinnerCreateRequest{
		UserID:        "nope",
		RaffleID:      primitive.NewObjectID().Hex(),
		WinningNumber: 1,
	})
	assert.Error(t, err)
}

func TestStatsCounters(t *testing.T) {
	userRepo := memory.NewUserRepository()
	raffleRepo := memory.NewRaffleRepository()
	purchaseRepo := memory.NewPurchaseRepository()
	service := NewStatsService(raffleRepo, userRepo, purchaseRepo)

	require.NoError(t, userRepo.Create(context.Background(), &models.User{Phone: "+5511955554444"}))
	require.NoError(t, raffleRepo.Create(context.Background(), &models.Raffle{Title: "a", TotalTickets: 10, PricePerTicket: 1}))
	require.NoError(t, raffleRepo.Create(context.Background(), &models.Raffle{Title: "b", TotalTickets: 10, PricePerTicket: 1, Status: models.RaffleStatusCompleted}))
	require.NoError(t, purchaseRepo.Create(context.Background(), &models.Purchase{Quantity: 1, Tickets: []int{1}, PaymentStatus: models.PaymentStatusPaid}))
	require.NoError(t, purchaseRepo.Create(context.Background(), &models.Purchase{Quantity: 1, Tickets: []int{2}, PaymentStatus: models.PaymentStatusPending}))

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRaffles)
	assert.Equal(t, int64(1), stats.ActiveRaffles)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalPurchases)
}
