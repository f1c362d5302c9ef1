package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mega12/raffle-backend/internal/models"
	"github.com/mega12/raffle-backend/internal/repositories/memory"
	"github.com/mega12/raffle-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type handlerFixture struct {
	router *gin.Engine
	user   *models.User
	raffle *models.Raffle
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := memory.NewUserRepository()
	raffleRepo := memory.NewRaffleRepository()
	purchaseRepo := memory.NewPurchaseRepository()

	user := &models.User{Phone: "+5511977776666", Name: "Diego"}
	require.NoError(t, userRepo.Create(context.Background(), user))

	raffle := &models.Raffle{
		Title:          "Handler Raffle",
		PricePerTicket: 2,
		TotalTickets:   20,
		Status:         models.RaffleStatusActive,
		BonusBoxes:     []models.BonusTier{{Quantity: 10, Boxes: 2}},
	}
	require.NoError(t, raffleRepo.Create(context.Background(), raffle))

	handler := NewPurchaseHandler(services.NewPurchaseService(purchaseRepo, raffleRepo, userRepo))

	router := gin.New()
	router.POST("/api/purchases", handler.CreatePurchase)
	router.GET("/api/purchases/user/:userId", handler.GetUserPurchases)

	return &handlerFixture{router: router, user: user, raffle: raffle}
}

func (f *handlerFixture) postPurchase(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/purchases", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreatePurchaseSuccess(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.postPurchase(t, models.PurchaseCreateRequest{
		UserID:   f.user.ID.Hex(),
		RaffleID: f.raffle.ID.Hex(),
		Quantity: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var purchase models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &purchase))
	assert.Len(t, purchase.Tickets, 10)
	assert.Equal(t, 20.0, purchase.TotalAmount)
	assert.Equal(t, 2, purchase.BonusBoxes)
	assert.Equal(t, models.PaymentStatusPaid, purchase.PaymentStatus)
}

func TestCreatePurchaseRaffleNotFound(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.postPurchase(t, models.PurchaseCreateRequest{
		UserID:   f.user.ID.Hex(),
		RaffleID: primitive.NewObjectID().Hex(),
		Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePurchaseInsufficientSupply(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.postPurchase(t, models.PurchaseCreateRequest{
		UserID:   f.user.ID.Hex(),
		RaffleID: f.raffle.ID.Hex(),
		Quantity: 21,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough tickets available")
}

func TestCreatePurchaseRejectsBadPayload(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.postPurchase(t, gin.H{"userId": f.user.ID.Hex()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.postPurchase(t, models.PurchaseCreateRequest{
		UserID:   "not-an-id",
		RaffleID: f.raffle.ID.Hex(),
		Quantity: 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserPurchases(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.postPurchase(t, models.PurchaseCreateRequest{
		UserID:   f.user.ID.Hex(),
		RaffleID: f.raffle.ID.Hex(),
		Quantity: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/purchases/user/"+f.user.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var purchases []models.Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchases))
	require.Len(t, purchases, 1)
	assert.Equal(t, 3, purchases[0].Quantity)
}
