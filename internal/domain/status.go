package domain

// StatusCode is the stock condition of a single book.
type StatusCode string

const (
	StatusCritical StatusCode = "CRITICAL"
	StatusLow      StatusCode = "LOW"
	StatusOK       StatusCode = "OK"
)

// Priority ranks how soon a seller should act on a stock condition.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// TurnoverCategory bands the annualized turnover ratio.
type TurnoverCategory string

const (
	TurnoverHigh   TurnoverCategory = "HIGH"
	TurnoverMedium TurnoverCategory = "MEDIUM"
	TurnoverLow    TurnoverCategory = "LOW"
)

// ForecastMethod tags which forecasting branch produced a DemandForecast.
type ForecastMethod string

const (
	ForecastNoData              ForecastMethod = "no_data"
	ForecastSimpleMovingAverage ForecastMethod = "simple_moving_average"
)

var statusMessages = map[StatusCode]string{
	StatusCritical: "Stock is critically low - immediate reorder needed",
	StatusLow:      "Stock is below reorder point - consider reordering",
	StatusOK:       "Stock levels are adequate",
}

var statusPriorities = map[StatusCode]Priority{
	StatusCritical: PriorityHigh,
	StatusLow:      PriorityMedium,
	StatusOK:       PriorityLow,
}

// StatusMessage returns the seller-facing message for a stock condition.
func StatusMessage(code StatusCode) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}

	return ""
}

// StatusPriority returns the action priority associated with a stock condition.
func StatusPriority(code StatusCode) Priority {
	if p, ok := statusPriorities[code]; ok {
		return p
	}

	return PriorityLow
}
