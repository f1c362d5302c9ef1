package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/services"
)

// WinnerHandler handles winner-related HTTP requests
type WinnerHandler struct {
	winnerService *services.WinnerService
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winnerService *services.WinnerService) *WinnerHandler {
	return &WinnerHandler{
		winnerService: winnerService,
	}
}

// GetWinners handles GET /winners
func (h *WinnerHandler) GetWinners(c *gin.Context) {
	winners, err := h.winnerService.GetRecentWinners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get winners: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, winners)
}

// CreateWinner handles POST /winners
func (h *WinnerHandler) CreateWinner(c *gin.Context) {
	var req models.WinnerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	winner, err := h.winnerService.RecordWinner(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to record winner: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, winner)
}
