package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pulse-api/pkg/market"
)

const (
	defaultCoin          = "ethereum"
	defaultVsCurrency    = "usd"
	defaultDays          = 1.0
	defaultInterval      = "hourly"
	defaultSourceTimeout = 10 * time.Second
)

// Source adapts the CoinGecko client to the market.Source contract.
type Source struct {
	client     *Client
	coin       string
	vsCurrency string
	days       float64
	interval   string
	timeout    time.Duration
}

type sourceConfig struct {
	coin          string
	vsCurrency    string
	days          float64
	interval      string
	timeout       time.Duration
	clientOptions []Option
}

// SourceOption customises the CoinGecko source.
type SourceOption func(*sourceConfig)

// WithCoin selects the coin identifier queried (defaults to "ethereum").
func WithCoin(coin string) SourceOption {
	return func(cfg *sourceConfig) {
		if coin != "" {
			cfg.coin = coin
		}
	}
}

// WithVsCurrency selects the quote currency (defaults to "usd").
func WithVsCurrency(currency string) SourceOption {
	return func(cfg *sourceConfig) {
		if currency != "" {
			cfg.vsCurrency = currency
		}
	}
}

// WithLookback overrides the lookback span in days and sampling interval.
func WithLookback(days float64, interval string) SourceOption {
	return func(cfg *sourceConfig) {
		if days > 0 {
			cfg.days = days
		}
		if interval != "" {
			cfg.interval = interval
		}
	}
}

// WithTimeout overrides the default per-fetch timeout.
func WithTimeout(timeout time.Duration) SourceOption {
	return func(cfg *sourceConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying CoinGecko client.
func WithClientOptions(options ...Option) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

// NewSource constructs a CoinGecko market data source.
func NewSource(opts ...SourceOption) *Source {
	cfg := &sourceConfig{
		coin:       defaultCoin,
		vsCurrency: defaultVsCurrency,
		days:       defaultDays,
		interval:   defaultInterval,
		timeout:    defaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Source{
		client:     NewClient(cfg.clientOptions...),
		coin:       cfg.coin,
		vsCurrency: cfg.vsCurrency,
		days:       cfg.days,
		interval:   cfg.interval,
		timeout:    cfg.timeout,
	}
}

// FetchPricePoints returns the chronological price series for the configured
// coin. Transport failures and series shorter than market.MinPoints are
// reported as market.ErrDataUnavailable.
func (s *Source) FetchPricePoints(ctx context.Context) ([]market.PricePoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	points, err := s.client.MarketChart(ctx, s.coin, s.vsCurrency, s.days, s.interval)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrDataUnavailable, err)
	}
	if len(points) < market.MinPoints {
		return nil, fmt.Errorf("%w: got %d price points for %s, need at least %d",
			market.ErrDataUnavailable, len(points), s.coin, market.MinPoints)
	}
	return points, nil
}

func init() {
	market.RegisterSource("coingecko", func(name string, cfg *market.SourceConfig) (market.Source, error) {
		opts := []SourceOption{
			WithCoin(cfg.Coin),
			WithVsCurrency(cfg.VsCurrency),
			WithLookback(cfg.Days, cfg.Interval),
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		clientOptions := []Option{}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.Timeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewSource(opts...), nil
	})
}
