package services

import (
	"context"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleService handles raffle-related business logic
type RaffleService struct {
	raffleRepo   repositories.RaffleRepository
	purchaseRepo repositories.PurchaseRepository
}

// NewRaffleService creates a new RaffleService
func NewRaffleService(raffleRepo repositories.RaffleRepository, purchaseRepo repositories.PurchaseRepository) *RaffleService {
	return &RaffleService{
		raffleRepo:   raffleRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreateRaffle creates a new raffle from an organizer request
func (s *RaffleService) CreateRaffle(ctx context.Context, req *models.RaffleCreateRequest) (*models.Raffle, error) {
	raffle := &models.Raffle{
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		PricePerTicket: req.PricePerTicket,
		TotalTickets:   req.TotalTickets,
		DrawDate:       req.DrawDate,
		Status:         models.RaffleStatusActive,
		Prizes:         req.Prizes,
		BonusBoxes:     req.BonusBoxes,
	}
	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		return nil, err
	}
	return raffle, nil
}

// GetActiveRaffles retrieves active raffles, newest first
func (s *RaffleService) GetActiveRaffles(ctx context.Context) ([]*models.Raffle, error) {
	return s.raffleRepo.FindByStatus(ctx, models.RaffleStatusActive, 100)
}

// GetRaffleByID retrieves a raffle by ID
func (s *RaffleService) GetRaffleByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	return s.raffleRepo.FindByID(ctx, id)
}

// GetSoldTicketNumbers returns every ticket number held by a paid purchase
// of the raffle
func (s *RaffleService) GetSoldTicketNumbers(ctx context.Context, raffleID primitive.ObjectID) ([]int, error) {
	return s.purchaseRepo.PaidTicketNumbers(ctx, raffleID)
}
