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

	"github.com/bookzone/inventory-go/internal/analytics"
	"github.com/bookzone/inventory-go/internal/api"
	"github.com/bookzone/inventory-go/internal/cache"
	"github.com/bookzone/inventory-go/internal/config"
	"github.com/bookzone/inventory-go/internal/repository/postgres"
	"github.com/bookzone/inventory-go/internal/service"
	"github.com/bookzone/inventory-go/pkg/logger"
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

	// Initialize repository and analytics engine
	repo := postgres.NewInventoryRepository(db)
	engine := analytics.NewEngine(repo, engineConfig(cfg))

	// Initialize cache
	recommendationCache, err := cache.NewRecommendationCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Recommendation cache unavailable, running without cache")
		recommendationCache = cache.NewNoopRecommendationCache()
	}

	inventoryService := service.NewInventoryService(engine, repo, recommendationCache)

	// Initialize HTTP server
	router := api.NewRouter(inventoryService, cfg.Server.AllowedOrigins)
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

// engineConfig starts from the reference policy and applies environment
// overrides for the knobs operators actually tune.
func engineConfig(cfg *config.Config) analytics.Config {
	engineCfg := analytics.DefaultConfig()
	if cfg.Analytics.LeadTimeDays > 0 {
		engineCfg.LeadTimeDays = cfg.Analytics.LeadTimeDays
	}
	if cfg.Analytics.OrderingCost > 0 {
		engineCfg.OrderingCost = cfg.Analytics.OrderingCost
	}
	if cfg.Analytics.HoldingCostRate > 0 {
		engineCfg.HoldingCostRate = cfg.Analytics.HoldingCostRate
	}
	if cfg.Analytics.HistoryWindowDays > 0 {
		engineCfg.HistoryWindowDays = cfg.Analytics.HistoryWindowDays
	}
	if cfg.Analytics.ForecastHorizonDays > 0 {
		engineCfg.ForecastHorizonDays = cfg.Analytics.ForecastHorizonDays
	}
	return engineCfg
}
