// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ravindra-p/stockpulse/internal/api"
	"github.com/ravindra-p/stockpulse/internal/cache"
	"github.com/ravindra-p/stockpulse/internal/config"
	"github.com/ravindra-p/stockpulse/internal/repository/postgres"
	"github.com/ravindra-p/stockpulse/internal/service"
	"github.com/ravindra-p/stockpulse/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	repo := postgres.NewInventoryRepository(db)
	thresholds := service.ThresholdsFromConfig(cfg.Engine)

	pushListCache, err := cache.NewPushListCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Push list cache unavailable, continuing without")
		pushListCache = cache.NewNoopPushListCache()
	}

	coverageCache, err := cache.NewCoverageCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Coverage cache unavailable, continuing without")
		coverageCache = cache.NewNoopCoverageCache()
	}

	services := &api.Services{
		PushListService: service.NewPushListService(repo, pushListCache, thresholds),
		BalanceService:  service.NewBalanceService(repo, thresholds),
		CoverageService: service.NewCoverageService(repo, coverageCache, thresholds),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
