// Package analytics implements the inventory management engine behind the
// marketplace's seller dashboard: demand forecasting (simple moving average),
// safety stock, EOQ / reorder point analysis, ABC (Pareto) classification,
// stock turnover, and a seller-level recommendation roll-up.
//
// The engine is stateless. Every operation is a pure function of its inputs
// plus read access to the repository; concurrent calls need no coordination.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bookzone/inventory-go/internal/domain"
	"github.com/bookzone/inventory-go/internal/repository"
)

// recommendationWorkers bounds the parallel per-book EOQ fan-out when
// building a seller-wide recommendation set.
const recommendationWorkers = 8

type Engine struct {
	repo repository.InventoryRepository
	cfg  Config
}

func NewEngine(repo repository.InventoryRepository, cfg Config) *Engine {
	return &Engine{repo: repo, cfg: cfg}
}

// ForecastDemand projects demand for one book over horizonDays using a
// simple moving average of the trailing sale history. An empty history is a
// valid state for new listings and yields an all-zero forecast tagged
// no_data, not an error. horizonDays <= 0 falls back to the configured
// default horizon.
func (e *Engine) ForecastDemand(ctx context.Context, bookID string, horizonDays int) (domain.DemandForecast, error) {
	if horizonDays <= 0 {
		horizonDays = e.cfg.ForecastHorizonDays
	}

	sales, err := e.repo.DailySales(ctx, bookID, e.cfg.HistoryWindowDays)
	if err != nil {
		return domain.DemandForecast{}, err
	}

	if len(sales) == 0 {
		return domain.DemandForecast{
			ForecastMethod: domain.ForecastNoData,
		}, nil
	}

	daily := make([]float64, len(sales))
	for i, s := range sales {
		daily[i] = s.Quantity
	}

	avg := mean(daily)

	// Population std dev; a single data point has zero variability by
	// definition, avoiding an undefined variance.
	var std float64
	if len(daily) > 1 {
		std = stdDevPopulation(daily)
	}

	forecast := avg * float64(horizonDays)

	var margin float64
	if std > 0 {
		margin = e.cfg.ServiceLevelZ * std * math.Sqrt(float64(horizonDays))
	}

	return domain.DemandForecast{
		AvgDailyDemand:   round2(avg),
		DemandStd:        round2(std),
		ForecastedDemand: round2(forecast),
		ConfidenceInterval: domain.ConfidenceInterval{
			Lower: round2(math.Max(0, forecast-margin)),
			Upper: round2(forecast + margin),
		},
		DataPoints:     len(daily),
		ForecastMethod: domain.ForecastSimpleMovingAverage,
	}, nil
}

// ComputeSafetyStock derives the buffer stock for one book from the
// variability of its per-order quantities over the trailing history window.
// Fewer than MinDataPoints sale events is too sparse for a variability
// estimate, so the configured floor is returned as a conservative default.
// The result is never below the floor.
func (e *Engine) ComputeSafetyStock(ctx context.Context, bookID string) (float64, error) {
	quantities, err := e.repo.OrderQuantities(ctx, bookID, e.cfg.HistoryWindowDays)
	if err != nil {
		return 0, err
	}

	if len(quantities) < e.cfg.MinDataPoints {
		return e.cfg.MinSafetyStock, nil
	}

	std := stdDevSample(quantities)

	// Safety stock = Z * demand std * sqrt(lead time)
	safetyStock := e.cfg.ServiceLevelZ * std * math.Sqrt(float64(e.cfg.LeadTimeDays))

	return math.Max(safetyStock, e.cfg.MinSafetyStock), nil
}

// AnalyzeEOQ computes the economic order quantity, reorder point, and stock
// status for one book. It returns (nil, nil) when the book does not exist;
// callers must check for the absent result.
func (e *Engine) AnalyzeEOQ(ctx context.Context, bookID string) (*domain.EOQAnalysis, error) {
	book, err := e.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}

	// Annualize conservatively: a single slow month should not understate
	// demand when the quarterly numbers disagree.
	annualDemand := annualizeDemand(book.MonthlySales, book.QuarterlySales)

	holdingCostPerUnit := book.Price * e.cfg.HoldingCostRate

	eoq := 1.0 // minimum viable order
	if holdingCostPerUnit > 0 && annualDemand > 0 {
		eoq = math.Sqrt((2 * float64(annualDemand) * e.cfg.OrderingCost) / holdingCostPerUnit)
	}

	safetyStock, err := e.ComputeSafetyStock(ctx, bookID)
	if err != nil {
		return nil, err
	}

	var dailyDemand float64
	if annualDemand > 0 {
		dailyDemand = float64(annualDemand) / 365
	}
	reorderPoint := safetyStock + dailyDemand*float64(e.cfg.LeadTimeDays)

	var totalAnnualCost float64
	if eoq > 0 {
		orderingCostAnnual := (float64(annualDemand) / eoq) * e.cfg.OrderingCost
		holdingCostAnnual := (eoq / 2) * holdingCostPerUnit
		totalAnnualCost = orderingCostAnnual + holdingCostAnnual
	}

	status, err := e.stockStatus(ctx, book.Quantity, reorderPoint, safetyStock)
	if err != nil {
		return nil, err
	}

	return &domain.EOQAnalysis{
		BookID:                book.ID,
		Title:                 book.Title,
		Author:                book.Author,
		CurrentQuantity:       book.Quantity,
		Price:                 book.Price,
		EconomicOrderQuantity: math.Round(eoq),
		SafetyStock:           math.Round(safetyStock),
		ReorderPoint:          math.Round(reorderPoint),
		AnnualDemand:          annualDemand,
		MonthlyDemand:         book.MonthlySales,
		DailyDemand:           round2(dailyDemand),
		OrderingCost:          e.cfg.OrderingCost,
		HoldingCostPerUnit:    round2(holdingCostPerUnit),
		TotalAnnualCost:       round2(totalAnnualCost),
		StockStatus:           status,
	}, nil
}

// stockStatus partitions a book's stock level against the unrounded safety
// stock and reorder point. First match wins: CRITICAL, then LOW, then OK.
func (e *Engine) stockStatus(ctx context.Context, currentQuantity int, reorderPoint, safetyStock float64) (domain.StockStatus, error) {
	var code domain.StatusCode
	switch {
	case float64(currentQuantity) <= safetyStock:
		code = domain.StatusCritical
	case float64(currentQuantity) <= reorderPoint:
		code = domain.StatusLow
	default:
		code = domain.StatusOK
	}

	days, err := e.daysUntilStockout(ctx, currentQuantity)
	if err != nil {
		return domain.StockStatus{}, err
	}

	return domain.StockStatus{
		Status:            code,
		Message:           domain.StatusMessage(code),
		Priority:          domain.StatusPriority(code),
		DaysUntilStockout: days,
	}, nil
}

// daysUntilStockout estimates how long the current stock lasts against the
// catalog-wide trailing daily demand. It returns 0 for empty stock, and nil
// when there is no demand at all (the stock never depletes).
func (e *Engine) daysUntilStockout(ctx context.Context, currentQuantity int) (*float64, error) {
	if currentQuantity <= 0 {
		zero := 0.0
		return &zero, nil
	}

	avgDailyDemand, err := e.repo.CatalogDailyDemand(ctx, e.cfg.StockoutWindowDays)
	if err != nil {
		return nil, err
	}
	if avgDailyDemand <= 0 {
		// No catalog sales at all; keep the estimate finite but
		// conservative rather than dividing by zero.
		avgDailyDemand = e.cfg.FallbackDailyDemand
	}
	if avgDailyDemand <= 0 {
		return nil, nil
	}

	days := round1(float64(currentQuantity) / avgDailyDemand)
	return &days, nil
}

// ClassifyABC buckets a seller's active books by cumulative inventory value:
// A up to the first threshold, B up to the second, C past that. The item
// that crosses a boundary belongs to the lower bucket. A catalog with zero
// total value degenerates to every item in A.
func (e *Engine) ClassifyABC(ctx context.Context, sellerID string) (domain.ABCClassification, error) {
	result := domain.ABCClassification{
		A: []domain.ABCItem{},
		B: []domain.ABCItem{},
		C: []domain.ABCItem{},
	}

	books, err := e.repo.SellerBooks(ctx, sellerID)
	if err != nil {
		return domain.ABCClassification{}, err
	}
	if len(books) == 0 {
		result.CategorySummary = summarizeABC(result)
		return result, nil
	}

	sorted := make([]domain.BookSnapshot, len(books))
	copy(sorted, books)
	sort.SliceStable(sorted, func(i, j int) bool {
		return inventoryValue(sorted[i]) > inventoryValue(sorted[j])
	})

	var totalValue float64
	for _, b := range sorted {
		totalValue += inventoryValue(b)
	}

	var cumulativeValue float64
	for _, b := range sorted {
		value := inventoryValue(b)
		cumulativeValue += value

		var cumulativePct float64
		if totalValue > 0 {
			cumulativePct = cumulativeValue / totalValue
		}

		item := domain.ABCItem{
			BookID:               b.ID,
			Title:                b.Title,
			Author:               b.Author,
			Price:                b.Price,
			Quantity:             b.Quantity,
			InventoryValue:       value,
			MonthlySales:         b.MonthlySales,
			CumulativePercentage: round2(cumulativePct * 100),
		}

		switch {
		case cumulativePct <= e.cfg.ABCThresholdA:
			result.A = append(result.A, item)
		case cumulativePct <= e.cfg.ABCThresholdB:
			result.B = append(result.B, item)
		default:
			result.C = append(result.C, item)
		}
	}

	result.TotalValue = totalValue
	result.CategorySummary = summarizeABC(result)

	return result, nil
}

// AnalyzeTurnover reports the annualized stock turnover of every active book
// a seller holds. Zero stock means a zero ratio, not an error.
func (e *Engine) AnalyzeTurnover(ctx context.Context, sellerID string) (domain.TurnoverReport, error) {
	books, err := e.repo.SellerBooks(ctx, sellerID)
	if err != nil {
		return domain.TurnoverReport{}, err
	}

	report := domain.TurnoverReport{Books: []domain.TurnoverItem{}}

	var totalTurnover float64
	for _, b := range books {
		annualSales := annualizeDemand(b.MonthlySales, b.QuarterlySales)

		// Average inventory simplified as current stock.
		var ratio float64
		if b.Quantity > 0 {
			ratio = float64(annualSales) / float64(b.Quantity)
		}

		category := e.categorizeTurnover(ratio)
		switch category {
		case domain.TurnoverHigh:
			report.TurnoverSummary.High++
		case domain.TurnoverMedium:
			report.TurnoverSummary.Medium++
		default:
			report.TurnoverSummary.Low++
		}

		report.Books = append(report.Books, domain.TurnoverItem{
			BookID:           b.ID,
			Title:            b.Title,
			Price:            b.Price,
			CurrentStock:     b.Quantity,
			AnnualSales:      annualSales,
			TurnoverRatio:    round2(ratio),
			TurnoverCategory: category,
		})

		totalTurnover += ratio
	}

	report.TotalItems = len(books)
	if report.TotalItems > 0 {
		report.AverageTurnover = round2(totalTurnover / float64(report.TotalItems))
	}

	return report, nil
}

func (e *Engine) categorizeTurnover(ratio float64) domain.TurnoverCategory {
	switch {
	case ratio >= e.cfg.TurnoverHighRatio:
		return domain.TurnoverHigh
	case ratio >= e.cfg.TurnoverMediumRatio:
		return domain.TurnoverMedium
	default:
		return domain.TurnoverLow
	}
}

// Recommendations rolls every analysis up into a single seller-wide view.
// The per-book EOQ analyses are independent, so they run as a bounded
// parallel map; results land in unordered buckets which are sorted before
// the deterministic aggregation step.
func (e *Engine) Recommendations(ctx context.Context, sellerID string) (domain.RecommendationSet, error) {
	books, err := e.repo.SellerBooks(ctx, sellerID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	analyses := make([]*domain.EOQAnalysis, len(books))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recommendationWorkers)
	for i, b := range books {
		g.Go(func() error {
			analysis, err := e.AnalyzeEOQ(gctx, b.ID)
			if err != nil {
				return fmt.Errorf("eoq analysis for book %s: %w", b.ID, err)
			}
			analyses[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.RecommendationSet{}, err
	}

	critical := []domain.EOQAnalysis{}
	lowStock := []domain.EOQAnalysis{}
	total := 0
	for _, a := range analyses {
		if a == nil {
			// The book disappeared between queries; skip it.
			continue
		}
		total++
		switch a.StockStatus.Priority {
		case domain.PriorityHigh:
			critical = append(critical, *a)
		case domain.PriorityMedium:
			lowStock = append(lowStock, *a)
		}
	}

	sortAnalyses(critical)
	sortAnalyses(lowStock)

	abc, err := e.ClassifyABC(ctx, sellerID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	turnover, err := e.AnalyzeTurnover(ctx, sellerID)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	return domain.RecommendationSet{
		SellerID: sellerID,
		Summary: domain.RecommendationSummary{
			TotalBooks:    total,
			CriticalItems: len(critical),
			LowStockItems: len(lowStock),
			OKItems:       total - len(critical) - len(lowStock),
		},
		CriticalItems:    critical,
		LowStockItems:    lowStock,
		ABCAnalysis:      abc,
		TurnoverAnalysis: turnover,
		Recommendations:  buildRecommendations(critical, lowStock, abc, turnover),
	}, nil
}

// buildRecommendations emits the advisory strings in fixed order: urgency
// first, then monitoring, then portfolio-shape advice. Rules whose condition
// is false produce nothing.
func buildRecommendations(critical, lowStock []domain.EOQAnalysis, abc domain.ABCClassification, turnover domain.TurnoverReport) []string {
	recommendations := []string{}

	if len(critical) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("URGENT: %d items need immediate reordering", len(critical)))
	}

	if len(lowStock) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Monitor: %d items are approaching reorder point", len(lowStock)))
	}

	if len(abc.A) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Focus on %d high-value items (Category A) - prioritize their inventory management", len(abc.A)))
	}

	if len(abc.C) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Review %d low-value items (Category C) - consider reducing stock or discontinuing", len(abc.C)))
	}

	if turnover.TurnoverSummary.Low > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Optimize: %d items have low turnover - consider price adjustments or promotions", turnover.TurnoverSummary.Low))
	}

	return recommendations
}

// annualizeDemand extrapolates yearly demand from 30- and 90-day sale
// counts, taking whichever estimate is larger.
func annualizeDemand(monthlySales, quarterlySales int) int {
	annual := monthlySales * 12
	if quarterly := quarterlySales * 4; quarterly > annual {
		annual = quarterly
	}
	return annual
}

func inventoryValue(b domain.BookSnapshot) float64 {
	return b.Price * float64(b.Quantity)
}

func summarizeABC(c domain.ABCClassification) map[string]domain.CategorySummary {
	return map[string]domain.CategorySummary{
		"A": bucketSummary(c.A),
		"B": bucketSummary(c.B),
		"C": bucketSummary(c.C),
	}
}

func bucketSummary(items []domain.ABCItem) domain.CategorySummary {
	var value float64
	for _, item := range items {
		value += item.InventoryValue
	}
	return domain.CategorySummary{Count: len(items), Value: value}
}

func sortAnalyses(items []domain.EOQAnalysis) {
	sort.Slice(items, func(i, j int) bool { return items[i].BookID < items[j].BookID })
}
