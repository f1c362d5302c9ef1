package services

import (
	"context"
	"time"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerService handles winner-record business logic. Winners are recorded as
// announced by organizers; draws are not executed here.
type WinnerService struct {
	winnerRepo repositories.WinnerRepository
}

// NewWinnerService creates a new WinnerService
func NewWinnerService(winnerRepo repositories.WinnerRepository) *WinnerService {
	return &WinnerService{
		winnerRepo: winnerRepo,
	}
}

// RecordWinner appends a winner record
func (s *WinnerService) RecordWinner(ctx context.Context, req *models.WinnerCreateRequest) (*models.Winner, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, err
	}
	raffleID, err := primitive.ObjectIDFromHex(req.RaffleID)
	if err != nil {
		return nil, err
	}

	winner := &models.Winner{
		UserID:        userID,
		UserPhone:     req.UserPhone,
		RaffleID:      raffleID,
		RaffleTitle:   req.RaffleTitle,
		PrizeName:     req.PrizeName,
		WinningNumber: req.WinningNumber,
		Date:          time.Now(),
	}
	if err := s.winnerRepo.Create(ctx, winner); err != nil {
		return nil, err
	}
	return winner, nil
}

// GetRecentWinners retrieves the most recent winners, newest first
func (s *WinnerService) GetRecentWinners(ctx context.Context) ([]*models.Winner, error) {
	return s.winnerRepo.FindRecent(ctx, 50)
}
