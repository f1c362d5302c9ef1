package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories"
	"github.com/mega12/raffle-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleHandler handles raffle-related HTTP requests
type RaffleHandler struct {
	raffleService *services.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService *services.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		raffleService: raffleService,
	}
}

// GetActiveRaffles handles GET /raffles
func (h *RaffleHandler) GetActiveRaffles(c *gin.Context) {
	raffles, err := h.raffleService.GetActiveRaffles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get raffles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, raffles)
}

// GetRaffleByID handles GET /raffles/:id
func (h *RaffleHandler) GetRaffleByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	raffle, err := h.raffleService.GetRaffleByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Raffle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get raffle: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// CreateRaffle handles POST /raffles
func (h *RaffleHandler) CreateRaffle(c *gin.Context) {
	var req models.RaffleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raffle, err := h.raffleService.CreateRaffle(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create raffle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, raffle)
}

// GetRaffleTickets handles GET /raffles/:id/tickets
func (h *RaffleHandler) GetRaffleTickets(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	tickets, err := h.raffleService.GetSoldTicketNumbers(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sold tickets: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"soldTickets": tickets})
}
