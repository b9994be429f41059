// Package coingecko fetches price history from the public CoinGecko API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pulse-api/pkg/market"
)

const (
	defaultBaseURL     = "https://api.coingecko.com/api/v3"
	defaultHTTPTimeout = 10 * time.Second
)

// Client wraps access to the CoinGecko market-chart endpoint.
//
// The client performs exactly one HTTP round trip per call: failed fetches
// are surfaced immediately so the caller can decide whether to retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithLogger injects a custom logger (defaults to log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a CoinGecko API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	return client
}

type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// MarketChart fetches the price series for the given coin over the lookback
// window. Timestamps in the payload are epoch milliseconds; malformed entries
// with fewer than two elements are skipped.
func (c *Client) MarketChart(ctx context.Context, coin, vsCurrency string, days float64, interval string) ([]market.PricePoint, error) {
	if strings.TrimSpace(coin) == "" {
		return nil, fmt.Errorf("coingecko: coin cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart", c.baseURL, url.PathEscape(coin))
	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("days", strconv.FormatFloat(days, 'f', -1, 64))
	query.Set("interval", interval)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("coingecko: market chart request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Printf("coingecko: market chart for %s returned %d", coin, resp.StatusCode)
		return nil, fmt.Errorf("coingecko: market chart status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload marketChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("coingecko: decode market chart: %w", err)
	}

	points := make([]market.PricePoint, 0, len(payload.Prices))
	for _, entry := range payload.Prices {
		if len(entry) < 2 {
			continue
		}
		points = append(points, market.PricePoint{
			Timestamp: time.UnixMilli(int64(entry[0])).UTC(),
			Price:     entry[1],
		})
	}
	return points, nil
}
