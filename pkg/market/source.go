package market

import (
	"context"
	"errors"
	"time"
)

// ErrDataUnavailable indicates that the upstream market data call failed or
// returned too few points to analyse. The caller owns retry policy; this
// layer never retries.
var ErrDataUnavailable = errors.New("market: price data unavailable")

// MinPoints is the smallest series any source may return: two points are the
// minimum needed to compute a change percentage.
const MinPoints = 2

// PricePoint is a single timestamped price observation. Timestamps are UTC.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// Source produces a chronologically ascending sequence of price points
// covering a fixed lookback window.
type Source interface {
	FetchPricePoints(ctx context.Context) ([]PricePoint, error)
}
