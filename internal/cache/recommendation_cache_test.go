package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzone/inventory-go/internal/config"
	"github.com/bookzone/inventory-go/internal/domain"
)

func TestRecommendationKey(t *testing.T) {
	assert.Equal(t, "inventory:recommendations:s1", recommendationKey("s1"))
	assert.Equal(t, "inventory:recommendations:s1", recommendationKey("  s1 "))
}

func TestNoopCacheWhenDisabled(t *testing.T) {
	c, err := NewRecommendationCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "s1", domain.RecommendationSet{SellerID: "s1"}))

	set, hit, err := c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, set)

	assert.NoError(t, c.Invalidate(ctx, "s1"))
	assert.NoError(t, c.InvalidateAll(ctx))
}
