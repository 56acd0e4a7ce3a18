package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookzone/inventory-go/internal/analytics"
	"github.com/bookzone/inventory-go/internal/api"
	"github.com/bookzone/inventory-go/internal/cache"
	"github.com/bookzone/inventory-go/internal/domain"
	"github.com/bookzone/inventory-go/internal/service"
)

type stubRepo struct {
	dailySales    map[string][]domain.DailySale
	orderQty      map[string][]float64
	books         map[string]*domain.BookSnapshot
	sellerBooks   map[string][]domain.BookSnapshot
	catalogDemand float64
	topSold       []domain.TopSoldBook
}

func (s *stubRepo) DailySales(ctx context.Context, bookID string, windowDays int) ([]domain.DailySale, error) {
	return s.dailySales[bookID], nil
}

func (s *stubRepo) OrderQuantities(ctx context.Context, bookID string, windowDays int) ([]float64, error) {
	return s.orderQty[bookID], nil
}

func (s *stubRepo) GetBook(ctx context.Context, bookID string) (*domain.BookSnapshot, error) {
	return s.books[bookID], nil
}

func (s *stubRepo) SellerBooks(ctx context.Context, sellerID string) ([]domain.BookSnapshot, error) {
	return s.sellerBooks[sellerID], nil
}

func (s *stubRepo) CatalogDailyDemand(ctx context.Context, windowDays int) (float64, error) {
	return s.catalogDemand, nil
}

func (s *stubRepo) TopSold(ctx context.Context, limit int) ([]domain.TopSoldBook, error) {
	if limit < len(s.topSold) {
		return s.topSold[:limit], nil
	}
	return s.topSold, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	book := domain.BookSnapshot{
		ID: "b1", Title: "Dune", Author: "Frank Herbert",
		Price: 20, Quantity: 10, SellerID: "s1", IsActive: true,
		MonthlySales: 10, QuarterlySales: 30,
	}
	repo := &stubRepo{
		dailySales:    map[string][]domain.DailySale{},
		orderQty:      map[string][]float64{},
		books:         map[string]*domain.BookSnapshot{"b1": &book},
		sellerBooks:   map[string][]domain.BookSnapshot{"s1": {book}},
		catalogDemand: 2.0,
		topSold: []domain.TopSoldBook{
			{ID: "b1", Title: "Dune", Author: "Frank Herbert", Price: 20, Quantity: 10, OrderCount: 40},
		},
	}

	engine := analytics.NewEngine(repo, analytics.DefaultConfig())
	svc := service.NewInventoryService(engine, repo, cache.NewNoopRecommendationCache())

	return api.NewRouter(svc, nil)
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestGetEOQ(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/b1/eoq")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b1", body["book_id"])
	assert.Equal(t, 20.0, body["economic_order_quantity"])
	assert.Equal(t, 120.0, body["annual_demand"])

	status, ok := body["stock_status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "OK", status["status"])
	assert.Equal(t, 5.0, status["days_until_stockout"])
}

func TestGetEOQNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/missing/eoq")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "book not found", body["error"])
}

func TestGetForecastNoSaleHistory(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/b1/forecast?days=30")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no_data", body["forecast_method"])
	assert.Equal(t, 0.0, body["forecasted_demand"])
}

func TestGetForecastRejectsBadDays(t *testing.T) {
	router := newTestRouter(t)

	for _, days := range []string{"abc", "0", "-3"} {
		rec, body := doRequest(t, router, "/api/v1/inventory/books/b1/forecast?days="+days)

		assert.Equalf(t, http.StatusBadRequest, rec.Code, "days=%s", days)
		assert.Equal(t, "days must be a positive integer", body["error"])
	}
}

func TestGetSafetyStock(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/b1/safety_stock")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b1", body["book_id"])
	assert.Equal(t, 1.0, body["safety_stock"])
}

func TestGetBookAnalysisCombinesViews(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/b1/analysis")

	assert.Equal(t, http.StatusOK, rec.Code)

	eoq, ok := body["eoq_analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b1", eoq["book_id"])

	forecast, ok := body["demand_forecast"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "no_data", forecast["forecast_method"])
}

func TestGetABCAnalysis(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/sellers/s1/abc")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200.0, body["total_value"])

	// A single book sits at cumulative 100% and classifies as C.
	bucketC, ok := body["C"].([]any)
	require.True(t, ok)
	assert.Len(t, bucketC, 1)

	bucketA, ok := body["A"].([]any)
	require.True(t, ok)
	assert.Empty(t, bucketA)
}

func TestGetTurnover(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/sellers/s1/turnover")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["total_items"])
	assert.Equal(t, 12.0, body["average_turnover"])
}

func TestGetRecommendations(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/sellers/s1/recommendations")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", body["seller_id"])

	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, summary["total_books"])
}

func TestGetTopSold(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/top_sold?limit=5")

	assert.Equal(t, http.StatusOK, rec.Code)

	books, ok := body["books"].([]any)
	require.True(t, ok)
	require.Len(t, books, 1)

	first, ok := books[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dune", first["title"])
	assert.Equal(t, 40.0, first["order_count"])
}

func TestGetTopSoldRejectsBadLimit(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, "/api/v1/inventory/books/top_sold?limit=zero")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be a positive integer", body["error"])
}
