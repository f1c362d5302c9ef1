package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mega12/raffle-backend/internal/config"
	"github.com/mega12/raffle-backend/internal/handlers"
	"github.com/mega12/raffle-backend/internal/middleware"
	"github.com/sirupsen/logrus"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	UserHandler     *handlers.UserHandler
	RaffleHandler   *handlers.RaffleHandler
	PurchaseHandler *handlers.PurchaseHandler
	WinnerHandler   *handlers.WinnerHandler
	RankingHandler  *handlers.RankingHandler
	StatsHandler    *handlers.StatsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, log *logrus.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Mega12 - Sistema de Rifas API", "version": "1.0"})
		})

		users := api.Group("/users")
		{
			users.POST("", deps.UserHandler.CreateUser)
			users.GET("/:id", deps.UserHandler.GetUserByID)
		}

		raffles := api.Group("/raffles")
		{
			raffles.GET("", deps.RaffleHandler.GetActiveRaffles)
			raffles.GET("/:id", deps.RaffleHandler.GetRaffleByID)
			raffles.POST("", deps.RaffleHandler.CreateRaffle)
			raffles.GET("/:id/tickets", deps.RaffleHandler.GetRaffleTickets)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", deps.PurchaseHandler.CreatePurchase)
			purchases.GET("/user/:userId", deps.PurchaseHandler.GetUserPurchases)
			purchases.GET("/raffle/:raffleId", deps.PurchaseHandler.GetRafflePurchases)
		}

		rankings := api.Group("/rankings")
		{
			rankings.GET("/top-buyers", deps.RankingHandler.GetTopBuyers)
			rankings.GET("/daily-buyers", deps.RankingHandler.GetDailyTopBuyers)
		}

		winners := api.Group("/winners")
		{
			winners.GET("", deps.WinnerHandler.GetWinners)
			winners.POST("", deps.WinnerHandler.CreateWinner)
		}

		api.GET("/stats", deps.StatsHandler.GetStats)
	}

	return router
}
