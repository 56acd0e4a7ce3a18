package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bookzone/inventory-go/internal/config"
	"github.com/bookzone/inventory-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	recommendationKeyPrefix = "inventory:recommendations"
	recommendationScanBatch = 100
)

// RecommendationCache stores seller-level recommendation sets. Seller-wide
// roll-ups fan out one EOQ analysis per book, so they are the only responses
// worth caching.
type RecommendationCache interface {
	Get(ctx context.Context, sellerID string) (*domain.RecommendationSet, bool, error)
	Set(ctx context.Context, sellerID string, set domain.RecommendationSet) error
	Invalidate(ctx context.Context, sellerID string) error
	InvalidateAll(ctx context.Context) error
}

type redisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRecommendationCache struct{}

func NewRecommendationCache(cfg config.CacheConfig) (RecommendationCache, error) {
	if !cfg.Enabled {
		return &noopRecommendationCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRecommendationCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopRecommendationCache() RecommendationCache {
	return &noopRecommendationCache{}
}

func (c *redisRecommendationCache) Get(ctx context.Context, sellerID string) (*domain.RecommendationSet, bool, error) {
	payload, err := c.client.Get(ctx, recommendationKey(sellerID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var set domain.RecommendationSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, false, fmt.Errorf("decode recommendation cache: %w", err)
	}

	return &set, true, nil
}

func (c *redisRecommendationCache) Set(ctx context.Context, sellerID string, set domain.RecommendationSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode recommendation cache: %w", err)
	}

	if err := c.client.Set(ctx, recommendationKey(sellerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRecommendationCache) Invalidate(ctx context.Context, sellerID string) error {
	return c.client.Del(ctx, recommendationKey(sellerID)).Err()
}

func (c *redisRecommendationCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, recommendationKeyPrefix, recommendationScanBatch)
}

func (n *noopRecommendationCache) Get(ctx context.Context, sellerID string) (*domain.RecommendationSet, bool, error) {
	return nil, false, nil
}

func (n *noopRecommendationCache) Set(ctx context.Context, sellerID string, set domain.RecommendationSet) error {
	return nil
}

func (n *noopRecommendationCache) Invalidate(ctx context.Context, sellerID string) error {
	return nil
}

func (n *noopRecommendationCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func recommendationKey(sellerID string) string {
	return fmt.Sprintf("%s:%s", recommendationKeyPrefix, strings.TrimSpace(sellerID))
}
