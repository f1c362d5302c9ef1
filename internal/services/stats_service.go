package services

import (
	"context"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
)

// StatsService aggregates platform-wide counters
type StatsService struct {
	raffleRepo   repositories.RaffleRepository
	userRepo     repositories.UserRepository
	purchaseRepo repositories.PurchaseRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(raffleRepo repositories.RaffleRepository, userRepo repositories.UserRepository, purchaseRepo repositories.PurchaseRepository) *StatsService {
	return &StatsService{
		raffleRepo:   raffleRepo,
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
	}
}

// GetStats returns platform totals: raffles, active raffles, users and paid
// purchases
func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	totalRaffles, err := s.raffleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeRaffles, err := s.raffleRepo.CountByStatus(ctx, models.RaffleStatusActive)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPurchases, err := s.purchaseRepo.CountPaid(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalRaffles:   totalRaffles,
		ActiveRaffles:  activeRaffles,
		TotalUsers:     totalUsers,
		TotalPurchases: totalPurchases,
	}, nil
}
