package domain

import "time"

// BookSnapshot is a point-in-time view of a listed book together with its
// recent sale counts. It is read from the marketplace tables and never
// mutated by the analytics engine.
type BookSnapshot struct {
	ID             string  `json:"book_id" db:"id"`
	Title          string  `json:"title" db:"title"`
	Author         string  `json:"author" db:"author"`
	Price          float64 `json:"price" db:"price"`
	Quantity       int     `json:"quantity" db:"quantity"`
	SellerID       string  `json:"seller_id" db:"seller_id"`
	IsActive       bool    `json:"is_active" db:"is_active"`
	MonthlySales   int     `json:"monthly_sales" db:"monthly_sales"`
	QuarterlySales int     `json:"quarterly_sales" db:"quarterly_sales"`
}

// DailySale is one day of aggregated sales for a single book.
type DailySale struct {
	Date     time.Time `json:"date" db:"sale_date"`
	Quantity float64   `json:"quantity" db:"daily_sales"`
}

// ConfidenceInterval bounds a forecast at 95% confidence. Lower is clamped
// at zero since demand cannot be negative.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// DemandForecast is the output of the moving-average demand forecaster.
type DemandForecast struct {
	AvgDailyDemand     float64            `json:"avg_daily_demand"`
	DemandStd          float64            `json:"demand_std"`
	ForecastedDemand   float64            `json:"forecasted_demand"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	DataPoints         int                `json:"data_points"`
	ForecastMethod     ForecastMethod     `json:"forecast_method"`
}

// StockStatus captures how urgently a book needs restocking.
type StockStatus struct {
	Status   StatusCode `json:"status"`
	Message  string     `json:"message"`
	Priority Priority   `json:"priority"`
	// DaysUntilStockout is nil when there is no demand and the current
	// stock never depletes.
	DaysUntilStockout *float64 `json:"days_until_stockout"`
}

// EOQAnalysis is the full economic-order-quantity breakdown for one book.
type EOQAnalysis struct {
	BookID                string      `json:"book_id"`
	Title                 string      `json:"title"`
	Author                string      `json:"author"`
	CurrentQuantity       int         `json:"current_quantity"`
	Price                 float64     `json:"price"`
	EconomicOrderQuantity float64     `json:"economic_order_quantity"`
	SafetyStock           float64     `json:"safety_stock"`
	ReorderPoint          float64     `json:"reorder_point"`
	AnnualDemand          int         `json:"annual_demand"`
	MonthlyDemand         int         `json:"monthly_demand"`
	DailyDemand           float64     `json:"daily_demand"`
	OrderingCost          float64     `json:"ordering_cost"`
	HoldingCostPerUnit    float64     `json:"holding_cost_per_unit"`
	TotalAnnualCost       float64     `json:"total_annual_cost"`
	StockStatus           StockStatus `json:"stock_status"`
}

// ABCItem is one book placed in an ABC bucket, with the cumulative share of
// inventory value at which it was classified.
type ABCItem struct {
	BookID               string  `json:"book_id"`
	Title                string  `json:"title"`
	Author               string  `json:"author"`
	Price                float64 `json:"price"`
	Quantity             int     `json:"quantity"`
	InventoryValue       float64 `json:"inventory_value"`
	MonthlySales         int     `json:"monthly_sales"`
	CumulativePercentage float64 `json:"cumulative_percentage"`
}

// CategorySummary aggregates one ABC bucket.
type CategorySummary struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// ABCClassification is the Pareto breakdown of a seller's inventory value.
type ABCClassification struct {
	A               []ABCItem                  `json:"A"`
	B               []ABCItem                  `json:"B"`
	C               []ABCItem                  `json:"C"`
	TotalValue      float64                    `json:"total_value"`
	CategorySummary map[string]CategorySummary `json:"category_summary"`
}

// TurnoverItem is the annualized turnover of one book.
type TurnoverItem struct {
	BookID           string           `json:"book_id"`
	Title            string           `json:"title"`
	Price            float64          `json:"price"`
	CurrentStock     int              `json:"current_stock"`
	AnnualSales      int              `json:"annual_sales"`
	TurnoverRatio    float64          `json:"turnover_ratio"`
	TurnoverCategory TurnoverCategory `json:"turnover_category"`
}

// TurnoverSummary counts books per turnover band.
type TurnoverSummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// TurnoverReport is the portfolio-wide turnover view for a seller.
type TurnoverReport struct {
	Books           []TurnoverItem  `json:"books"`
	AverageTurnover float64         `json:"average_turnover"`
	TotalItems      int             `json:"total_items"`
	TurnoverSummary TurnoverSummary `json:"turnover_summary"`
}

// RecommendationSummary counts books per stock condition for a seller.
type RecommendationSummary struct {
	TotalBooks    int `json:"total_books"`
	CriticalItems int `json:"critical_items"`
	LowStockItems int `json:"low_stock_items"`
	OKItems       int `json:"ok_items"`
}

// RecommendationSet is the seller-wide roll-up of all analyses plus the
// ordered advisory strings derived from them.
type RecommendationSet struct {
	SellerID         string                `json:"seller_id"`
	Summary          RecommendationSummary `json:"summary"`
	CriticalItems    []EOQAnalysis         `json:"critical_items"`
	LowStockItems    []EOQAnalysis         `json:"low_stock_items"`
	ABCAnalysis      ABCClassification     `json:"abc_analysis"`
	TurnoverAnalysis TurnoverReport        `json:"turnover_analysis"`
	Recommendations  []string              `json:"recommendations"`
}

// TopSoldBook is a best-selling active listing with its lifetime order count.
type TopSoldBook struct {
	ID         string  `json:"book_id" db:"id"`
	Title      string  `json:"title" db:"title"`
	Author     string  `json:"author" db:"author"`
	Price      float64 `json:"price" db:"price"`
	Quantity   int     `json:"quantity" db:"quantity"`
	OrderCount int     `json:"order_count" db:"order_count"`
}
