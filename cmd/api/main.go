package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mega12/raffle-backend/api/routes"
	"github.com/mega12/raffle-backend/internal/config"
	"github.com/mega12/raffle-backend/internal/handlers"
	mongorepo "github.com/mega12/raffle-backend/internal/repositories/mongodb"
	"github.com/mega12/raffle-backend/internal/services"
	"github.com/mega12/raffle-backend/pkg/mongodb"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()
	mongoClient, err := mongodb.NewClient(connectCtx, cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepo := mongorepo.NewUserRepository(db)
	raffleRepo := mongorepo.NewRaffleRepository(db)
	purchaseRepo := mongorepo.NewPurchaseRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)

	userService := services.NewUserService(userRepo)
	raffleService := services.NewRaffleService(raffleRepo, purchaseRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, raffleRepo, userRepo)
	winnerService := services.NewWinnerService(winnerRepo)
	rankingService := services.NewRankingService(purchaseRepo, userRepo)
	statsService := services.NewStatsService(raffleRepo, userRepo, purchaseRepo)

	handlerDeps := routes.HandlerDependencies{
		UserHandler:     handlers.NewUserHandler(userService),
		RaffleHandler:   handlers.NewRaffleHandler(raffleService),
		PurchaseHandler: handlers.NewPurchaseHandler(purchaseService),
		WinnerHandler:   handlers.NewWinnerHandler(winnerService),
		RankingHandler:  handlers.NewRankingHandler(rankingService),
		StatsHandler:    handlers.NewStatsHandler(statsService),
	}

	router := routes.SetupRouter(cfg, log, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}
