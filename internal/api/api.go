// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/bookzone/inventory-go/internal/api/handlers"
	"github.com/bookzone/inventory-go/internal/api/middleware"
	"github.com/bookzone/inventory-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(inventoryService *service.InventoryService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if inventoryService != nil {
		inventoryHandler := handlers.NewInventoryHandler(inventoryService)
		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.GET("/books/top_sold", inventoryHandler.GetTopSold)
			inventoryGroup.GET("/books/:id/forecast", inventoryHandler.GetForecast)
			inventoryGroup.GET("/books/:id/safety_stock", inventoryHandler.GetSafetyStock)
			inventoryGroup.GET("/books/:id/eoq", inventoryHandler.GetEOQ)
			inventoryGroup.GET("/books/:id/analysis", inventoryHandler.GetBookAnalysis)
			inventoryGroup.GET("/sellers/:id/abc", inventoryHandler.GetABCAnalysis)
			inventoryGroup.GET("/sellers/:id/turnover", inventoryHandler.GetTurnover)
			inventoryGroup.GET("/sellers/:id/recommendations", inventoryHandler.GetRecommendations)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
