package services

import (
	"context"
	"errors"
	"time"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
)

// RankingService builds buyer leaderboards from paid purchases
type RankingService struct {
	purchaseRepo repositories.PurchaseRepository
	userRepo     repositories.UserRepository
}

// NewRankingService creates a new RankingService
func NewRankingService(purchaseRepo repositories.PurchaseRepository, userRepo repositories.UserRepository) *RankingService {
	return &RankingService{
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
	}
}

// GetTopBuyers returns the all-time top 10 buyers by tickets bought
func (s *RankingService) GetTopBuyers(ctx context.Context) ([]*models.BuyerRanking, error) {
	return s.topBuyers(ctx, time.Time{})
}

// GetDailyTopBuyers returns the top 10 buyers since midnight UTC
func (s *RankingService) GetDailyTopBuyers(ctx context.Context) ([]*models.BuyerRanking, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.topBuyers(ctx, midnight)
}

func (s *RankingService) topBuyers(ctx context.Context, since time.Time) ([]*models.BuyerRanking, error) {
	rankings, err := s.purchaseRepo.TopBuyers(ctx, since, 10)
	if err != nil {
		return nil, err
	}

	for _, ranking := range rankings {
		user, err := s.userRepo.FindByID(ctx, ranking.UserID)
		if err != nil {
			// A ranking row for a deleted user still counts; it just stays
			// anonymous.
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		ranking.UserPhone = user.Phone
		ranking.UserName = user.Name
		if ranking.UserName == "" {
			ranking.UserName = user.Phone
		}
	}
	return rankings, nil
}
