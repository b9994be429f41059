package analyzer

import (
	"pulse-api/pkg/market"
)

// PriceMetrics bundles the derived statistics for one analysis run.
// Percentages are signed; High24h/Low24h span the whole fetched series, so
// Low24h <= CurrentPrice <= High24h holds by construction.
type PriceMetrics struct {
	CurrentPrice float64 `json:"current_price"`
	HourlyChange float64 `json:"hourly_change_pct"`
	DailyChange  float64 `json:"daily_change_pct"`
	High24h      float64 `json:"high_24h"`
	Low24h       float64 `json:"low_24h"`
}

// AnalysisResult is the terminal output of one analysis invocation.
type AnalysisResult struct {
	Metrics PriceMetrics `json:"metrics"`
	Summary string       `json:"summary"`
}

// PercentChange returns the percentage change from old to new. Defined as
// exactly 0.0 when old is zero so downstream formatting stays deterministic.
func PercentChange(oldPrice, newPrice float64) float64 {
	if oldPrice == 0 {
		return 0.0
	}
	return (newPrice - oldPrice) / oldPrice * 100
}

// ComputeMetrics derives the summary statistics from a chronologically
// ascending price series. The series must contain at least two points.
func ComputeMetrics(points []market.PricePoint) (PriceMetrics, error) {
	if len(points) < market.MinPoints {
		return PriceMetrics{}, ErrInsufficientData
	}

	current := points[len(points)-1].Price
	previous := points[len(points)-2].Price
	first := points[0].Price

	high := points[0].Price
	low := points[0].Price
	for _, point := range points[1:] {
		if point.Price > high {
			high = point.Price
		}
		if point.Price < low {
			low = point.Price
		}
	}

	return PriceMetrics{
		CurrentPrice: current,
		HourlyChange: PercentChange(previous, current),
		DailyChange:  PercentChange(first, current),
		High24h:      high,
		Low24h:       low,
	}, nil
}

// recentPoints returns up to n of the most recent observations.
func recentPoints(points []market.PricePoint, n int) []market.PricePoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
