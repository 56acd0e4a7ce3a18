package analytics

// Config is the immutable inventory policy the engine is constructed with.
// Tests exercise alternate policies by passing their own values; production
// wiring starts from DefaultConfig and applies environment overrides.
type Config struct {
	// ServiceLevelZ is the z-score used for the 95% service level in both
	// the forecast confidence interval and the safety stock formula.
	ServiceLevelZ float64

	// LeadTimeDays is the assumed days between placing and receiving an order.
	LeadTimeDays int

	// OrderingCost is the fixed cost per purchase order.
	OrderingCost float64

	// HoldingCostRate is the yearly holding cost as a fraction of unit
	// price. Secondhand books depreciate, so the reference rate is 15%.
	HoldingCostRate float64

	// ABCThresholdA and ABCThresholdB are the cumulative-value cutoffs for
	// the A and B buckets; everything past B falls into C.
	ABCThresholdA float64
	ABCThresholdB float64

	// TurnoverHighRatio and TurnoverMediumRatio band the annualized
	// turnover ratio (>= 12 means the full stock turns more than monthly).
	TurnoverHighRatio   float64
	TurnoverMediumRatio float64

	// HistoryWindowDays is the trailing window of sale history feeding the
	// forecast and safety stock computations.
	HistoryWindowDays int

	// ForecastHorizonDays is the default horizon demand is projected over.
	ForecastHorizonDays int

	// StockoutWindowDays is the trailing window for the catalog-wide daily
	// demand used in days-until-stockout estimates.
	StockoutWindowDays int

	// MinSafetyStock floors every safety stock recommendation; a zero
	// buffer is never recommended.
	MinSafetyStock float64

	// MinDataPoints is the number of sale events below which safety stock
	// falls back to MinSafetyStock instead of a variability estimate.
	MinDataPoints int

	// FallbackDailyDemand stands in for the catalog daily demand when no
	// sales exist, keeping stockout estimates finite.
	FallbackDailyDemand float64
}

// DefaultConfig returns the reference inventory policy.
func DefaultConfig() Config {
	return Config{
		ServiceLevelZ:       1.96,
		LeadTimeDays:        7,
		OrderingCost:        5,
		HoldingCostRate:     0.15,
		ABCThresholdA:       0.80,
		ABCThresholdB:       0.95,
		TurnoverHighRatio:   12,
		TurnoverMediumRatio: 4,
		HistoryWindowDays:   90,
		ForecastHorizonDays: 30,
		StockoutWindowDays:  30,
		MinSafetyStock:      1,
		MinDataPoints:       3,
		FallbackDailyDemand: 0.1,
	}
}
