package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzone/inventory-go/internal/analytics"
	"github.com/bookzone/inventory-go/internal/domain"
)

type stubRepo struct {
	sellerBooks map[string][]domain.BookSnapshot
	books       map[string]*domain.BookSnapshot
	topSold     []domain.TopSoldBook
	calls       int
}

func (s *stubRepo) DailySales(ctx context.Context, bookID string, windowDays int) ([]domain.DailySale, error) {
	return nil, nil
}

func (s *stubRepo) OrderQuantities(ctx context.Context, bookID string, windowDays int) ([]float64, error) {
	return nil, nil
}

func (s *stubRepo) GetBook(ctx context.Context, bookID string) (*domain.BookSnapshot, error) {
	return s.books[bookID], nil
}

func (s *stubRepo) SellerBooks(ctx context.Context, sellerID string) ([]domain.BookSnapshot, error) {
	s.calls++
	return s.sellerBooks[sellerID], nil
}

func (s *stubRepo) CatalogDailyDemand(ctx context.Context, windowDays int) (float64, error) {
	return 1.0, nil
}

func (s *stubRepo) TopSold(ctx context.Context, limit int) ([]domain.TopSoldBook, error) {
	return s.topSold, nil
}

// recordingCache tracks cache traffic and optionally fails.
type recordingCache struct {
	stored map[string]domain.RecommendationSet
	getErr error
	setErr error
	hits   int
	sets   int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{stored: map[string]domain.RecommendationSet{}}
}

func (c *recordingCache) Get(ctx context.Context, sellerID string) (*domain.RecommendationSet, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if set, ok := c.stored[sellerID]; ok {
		c.hits++
		return &set, true, nil
	}
	return nil, false, nil
}

func (c *recordingCache) Set(ctx context.Context, sellerID string, set domain.RecommendationSet) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.stored[sellerID] = set
	return nil
}

func (c *recordingCache) Invalidate(ctx context.Context, sellerID string) error {
	delete(c.stored, sellerID)
	return nil
}

func (c *recordingCache) InvalidateAll(ctx context.Context) error {
	c.stored = map[string]domain.RecommendationSet{}
	return nil
}

func newServiceUnderTest(c *recordingCache) (*InventoryService, *stubRepo) {
	book := domain.BookSnapshot{
		ID: "b1", Title: "Dune", Price: 20, Quantity: 10,
		SellerID: "s1", IsActive: true, MonthlySales: 10, QuarterlySales: 30,
	}
	repo := &stubRepo{
		sellerBooks: map[string][]domain.BookSnapshot{"s1": {book}},
		books:       map[string]*domain.BookSnapshot{"b1": &book},
	}
	engine := analytics.NewEngine(repo, analytics.DefaultConfig())
	return NewInventoryService(engine, repo, c), repo
}

func TestGetRecommendationsPopulatesCache(t *testing.T) {
	c := newRecordingCache()
	svc, repo := newServiceUnderTest(c)
	ctx := context.Background()

	first, err := svc.GetRecommendations(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)
	assert.Equal(t, 1, first.Summary.TotalBooks)

	callsAfterMiss := repo.calls

	second, err := svc.GetRecommendations(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, first, second)
	// The hit never reaches the repository.
	assert.Equal(t, callsAfterMiss, repo.calls)
}

func TestGetRecommendationsDegradesOnCacheFailure(t *testing.T) {
	c := newRecordingCache()
	c.getErr = errors.New("redis: connection refused")
	c.setErr = c.getErr
	svc, _ := newServiceUnderTest(c)

	set, err := svc.GetRecommendations(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Summary.TotalBooks)
}

func TestNilCacheDefaultsToNoop(t *testing.T) {
	book := domain.BookSnapshot{ID: "b1", Price: 20, Quantity: 10, SellerID: "s1", IsActive: true}
	repo := &stubRepo{
		sellerBooks: map[string][]domain.BookSnapshot{"s1": {book}},
		books:       map[string]*domain.BookSnapshot{"b1": &book},
	}
	svc := NewInventoryService(analytics.NewEngine(repo, analytics.DefaultConfig()), repo, nil)

	set, err := svc.GetRecommendations(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Summary.TotalBooks)
}

func TestTopSoldPassesThrough(t *testing.T) {
	c := newRecordingCache()
	svc, repo := newServiceUnderTest(c)
	repo.topSold = []domain.TopSoldBook{{ID: "b1", Title: "Dune", OrderCount: 40}}

	books, err := svc.TopSold(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 40, books[0].OrderCount)
}
