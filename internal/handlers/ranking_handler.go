package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mega12/raffle-backend/internal/services"
)

// RankingHandler handles leaderboard HTTP requests
type RankingHandler struct {
	rankingService *services.RankingService
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(rankingService *services.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// GetTopBuyers handles GET /rankings/top-buyers
func (h *RankingHandler) GetTopBuyers(c *gin.Context) {
	rankings, err := h.rankingService.GetTopBuyers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rankings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// GetDailyTopBuyers handles GET /rankings/daily-buyers
func (h *RankingHandler) GetDailyTopBuyers(c *gin.Context) {
	rankings, err := h.rankingService.GetDailyTopBuyers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rankings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, rankings)
}
