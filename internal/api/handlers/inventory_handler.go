package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bookzone/inventory-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// GetForecast handles GET /inventory/books/:id/forecast?days=30
func (h *InventoryHandler) GetForecast(c *gin.Context) {
	bookID := strings.TrimSpace(c.Param("id"))
	if bookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book id is required"})
		return
	}

	days := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	forecast, err := h.service.ForecastDemand(c.Request.Context(), bookID, days)
	if err != nil {
		h.serverError(c, "failed to forecast demand", err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

// GetSafetyStock handles GET /inventory/books/:id/safety_stock
func (h *InventoryHandler) GetSafetyStock(c *gin.Context) {
	bookID := strings.TrimSpace(c.Param("id"))
	if bookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book id is required"})
		return
	}

	safetyStock, err := h.service.ComputeSafetyStock(c.Request.Context(), bookID)
	if err != nil {
		h.serverError(c, "failed to compute safety stock", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id":      bookID,
		"safety_stock": safetyStock,
	})
}

// GetEOQ handles GET /inventory/books/:id/eoq
func (h *InventoryHandler) GetEOQ(c *gin.Context) {
	bookID := strings.TrimSpace(c.Param("id"))
	if bookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book id is required"})
		return
	}

	analysis, err := h.service.AnalyzeEOQ(c.Request.Context(), bookID)
	if err != nil {
		h.serverError(c, "failed to analyze EOQ", err)
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetBookAnalysis handles GET /inventory/books/:id/analysis and combines the
// EOQ breakdown with the demand forecast for the seller's detail view.
func (h *InventoryHandler) GetBookAnalysis(c *gin.Context) {
	bookID := strings.TrimSpace(c.Param("id"))
	if bookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book id is required"})
		return
	}

	analysis, err := h.service.AnalyzeEOQ(c.Request.Context(), bookID)
	if err != nil {
		h.serverError(c, "failed to analyze EOQ", err)
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	forecast, err := h.service.ForecastDemand(c.Request.Context(), bookID, 0)
	if err != nil {
		h.serverError(c, "failed to forecast demand", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eoq_analysis":    analysis,
		"demand_forecast": forecast,
	})
}

// GetABCAnalysis handles GET /inventory/sellers/:id/abc
func (h *InventoryHandler) GetABCAnalysis(c *gin.Context) {
	sellerID := strings.TrimSpace(c.Param("id"))
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller id is required"})
		return
	}

	classification, err := h.service.ClassifyABC(c.Request.Context(), sellerID)
	if err != nil {
		h.serverError(c, "failed to classify inventory", err)
		return
	}

	c.JSON(http.StatusOK, classification)
}

// GetTurnover handles GET /inventory/sellers/:id/turnover
func (h *InventoryHandler) GetTurnover(c *gin.Context) {
	sellerID := strings.TrimSpace(c.Param("id"))
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller id is required"})
		return
	}

	report, err := h.service.AnalyzeTurnover(c.Request.Context(), sellerID)
	if err != nil {
		h.serverError(c, "failed to analyze turnover", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRecommendations handles GET /inventory/sellers/:id/recommendations
func (h *InventoryHandler) GetRecommendations(c *gin.Context) {
	sellerID := strings.TrimSpace(c.Param("id"))
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller id is required"})
		return
	}

	set, err := h.service.GetRecommendations(c.Request.Context(), sellerID)
	if err != nil {
		h.serverError(c, "failed to build recommendations", err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// GetTopSold handles GET /inventory/books/top_sold?limit=8
func (h *InventoryHandler) GetTopSold(c *gin.Context) {
	limit := 8
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	books, err := h.service.TopSold(c.Request.Context(), limit)
	if err != nil {
		h.serverError(c, "failed to get top sold books", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}

func (h *InventoryHandler) serverError(c *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
