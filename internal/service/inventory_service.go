package service

import (
	"context"

	"github.com/bookzone/inventory-go/internal/analytics"
	"github.com/bookzone/inventory-go/internal/cache"
	"github.com/bookzone/inventory-go/internal/domain"
	"github.com/bookzone/inventory-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// InventoryService fronts the analytics engine for the HTTP layer and adds a
// cache-aside layer for the expensive seller-wide roll-up. Cache failures
// degrade to recomputation, never to request failure.
type InventoryService struct {
	engine *analytics.Engine
	repo   repository.InventoryRepository
	cache  cache.RecommendationCache
}

func NewInventoryService(engine *analytics.Engine, repo repository.InventoryRepository, cacheImpl cache.RecommendationCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRecommendationCache()
	}
	return &InventoryService{engine: engine, repo: repo, cache: cacheImpl}
}

func (s *InventoryService) ForecastDemand(ctx context.Context, bookID string, horizonDays int) (domain.DemandForecast, error) {
	return s.engine.ForecastDemand(ctx, bookID, horizonDays)
}

func (s *InventoryService) ComputeSafetyStock(ctx context.Context, bookID string) (float64, error) {
	return s.engine.ComputeSafetyStock(ctx, bookID)
}

func (s *InventoryService) AnalyzeEOQ(ctx context.Context, bookID string) (*domain.EOQAnalysis, error) {
	return s.engine.AnalyzeEOQ(ctx, bookID)
}

func (s *InventoryService) ClassifyABC(ctx context.Context, sellerID string) (domain.ABCClassification, error) {
	return s.engine.ClassifyABC(ctx, sellerID)
}

func (s *InventoryService) AnalyzeTurnover(ctx context.Context, sellerID string) (domain.TurnoverReport, error) {
	return s.engine.AnalyzeTurnover(ctx, sellerID)
}

func (s *InventoryService) GetRecommendations(ctx context.Context, sellerID string) (domain.RecommendationSet, error) {
	if set, ok, err := s.cache.Get(ctx, sellerID); err == nil && ok {
		return *set, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get recommendations failed")
	}

	set, err := s.engine.Recommendations(ctx, sellerID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	if err := s.cache.Set(ctx, sellerID, set); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set recommendations failed")
	}

	return set, nil
}

func (s *InventoryService) TopSold(ctx context.Context, limit int) ([]domain.TopSoldBook, error) {
	return s.repo.TopSold(ctx, limit)
}
