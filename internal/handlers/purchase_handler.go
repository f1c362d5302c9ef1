package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mega12/raffle-backend/internal/allocation"
	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// CreatePurchase handles POST /purchases
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req models.PurchaseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	raffleID, err := primitive.ObjectIDFromHex(req.RaffleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid raffle ID format"})
		return
	}

	purchase, err := h.purchaseService.Purchase(c.Request.Context(), userID, raffleID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRaffleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Raffle not found"})
		case errors.Is(err, allocation.ErrInsufficientSupply):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough tickets available"})
		case errors.Is(err, services.ErrTooManyConflicts):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Purchase conflicted, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// GetUserPurchases handles GET /purchases/user/:userId
func (h *PurchaseHandler) GetUserPurchases(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	purchases, err := h.purchaseService.GetPurchasesByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get purchases: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// GetRafflePurchases handles GET /purchases/raffle/:raffleId
func (h *PurchaseHandler) GetRafflePurchases(c *gin.Context) {
	raffleID, err := primitive.ObjectIDFromHex(c.Param("raffleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid raffle ID format"})
		return
	}

	purchases, err := h.purchaseService.GetPaidPurchasesByRaffle(c.Request.Context(), raffleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get purchases: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, purchases)
}
