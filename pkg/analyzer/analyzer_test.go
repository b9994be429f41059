package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-api/pkg/llm"
	"pulse-api/pkg/market"
)

type stubSource struct {
	points []market.PricePoint
	err    error
}

func (s *stubSource) FetchPricePoints(ctx context.Context) ([]market.PricePoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

type stubProvider struct {
	text   string
	err    error
	calls  int
	system string
	user   string
	cfg    llm.GenerationConfig
}

func (p *stubProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, cfg llm.GenerationConfig) (string, error) {
	p.calls++
	p.system = systemPrompt
	p.user = userPrompt
	p.cfg = cfg
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

// makeSeries builds n hourly observations starting at $1,800 and climbing by
// $10 per hour.
func makeSeries(n int) []market.PricePoint {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]market.PricePoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, market.PricePoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Price:     1800 + float64(i)*10,
		})
	}
	return points
}

func TestComputeMetrics(t *testing.T) {
	metrics, err := ComputeMetrics(makeSeries(25))
	require.NoError(t, err)

	assert.Equal(t, 2040.0, metrics.CurrentPrice)
	assert.Equal(t, 2040.0, metrics.High24h)
	assert.Equal(t, 1800.0, metrics.Low24h)
	assert.InDelta(t, 0.4926, metrics.HourlyChange, 0.0001)
	assert.InDelta(t, 13.3333, metrics.DailyChange, 0.0001)
	assert.LessOrEqual(t, metrics.Low24h, metrics.CurrentPrice)
	assert.LessOrEqual(t, metrics.CurrentPrice, metrics.High24h)
}

func TestComputeMetricsInsufficientData(t *testing.T) {
	_, err := ComputeMetrics(makeSeries(1))
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = ComputeMetrics(nil)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPercentChangeZeroBase(t *testing.T) {
	assert.Equal(t, 0.0, PercentChange(0, 100))
	assert.InDelta(t, -50.0, PercentChange(100, 50), 0.0001)
	assert.InDelta(t, 25.0, PercentChange(100, 125), 0.0001)
}

func TestAnalyzeReturnsProviderTextVerbatim(t *testing.T) {
	provider := &stubProvider{text: "ETH is consolidating above $2,000 with mild upward momentum."}
	a, err := New(&stubSource{points: makeSeries(25)}, provider, WithModel("analyst"))
	require.NoError(t, err)

	result, err := a.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, provider.text, result.Summary)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "analyst", provider.cfg.Model)
	assert.InDelta(t, 0.3, provider.cfg.Temperature, 0.0001)
	require.NotNil(t, provider.cfg.MaxTokens)
	assert.Equal(t, 400, *provider.cfg.MaxTokens)
	assert.Contains(t, provider.system, "cryptocurrency market analyst")
	assert.Contains(t, provider.user, "Current price: $2,040.00")
	assert.Contains(t, provider.user, "1h change: +0.49%")
	assert.Contains(t, provider.user, "24h change: +13.33%")
}

func TestAnalyzePromptRecentWindow(t *testing.T) {
	provider := &stubProvider{text: "ok"}
	a, err := New(&stubSource{points: makeSeries(25)}, provider)
	require.NoError(t, err)

	_, err = a.Analyze(context.Background())
	require.NoError(t, err)

	// Only the trailing window of observations appears in the prompt.
	assert.Equal(t, RecentWindow, strings.Count(provider.user, "\n- "))
	assert.NotContains(t, provider.user, "- 2024-03-01T00:00:00Z")
	assert.Contains(t, provider.user, "- 2024-03-01T19:00:00Z: $1,990.00")
	assert.Contains(t, provider.user, "- 2024-03-02T00:00:00Z: $2,040.00")
}

func TestAnalyzeOfflineMode(t *testing.T) {
	a, err := New(&stubSource{points: makeSeries(25)}, nil)
	require.NoError(t, err)

	result, err := a.Analyze(context.Background())
	require.NoError(t, err)

	assert.Contains(t, result.Summary, "ETH market summary (offline mode).")
	assert.Contains(t, result.Summary, "configure a generation provider")
	assert.Contains(t, result.Summary, "Key stats:")
	assert.Contains(t, result.Summary, "- Current price: $2,040.00")
	assert.Contains(t, result.Summary, "- Last hour: up 0.49%")
	assert.Contains(t, result.Summary, "- Last 24h: higher by 13.33%")
	assert.Contains(t, result.Summary, "- 24h range: $1,800.00 to $2,040.00 (13.33% spread)")
	assert.Contains(t, result.Summary, "Recent prices:")
	assert.Contains(t, result.Summary, "- 2024-03-02T00:00:00Z: $2,040.00")
	assert.NotContains(t, result.Summary, "Provider diagnostic:")
	assert.Equal(t, RecentWindow, strings.Count(result.Summary, "Z: $"))
}

func TestAnalyzeRateLimitedFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("openai: 429 rate limit exceeded, retry later")}
	a, err := New(&stubSource{points: makeSeries(25)}, provider)
	require.NoError(t, err)

	result, err := a.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Contains(t, result.Summary, "ETH market summary (generation rate-limited).")
	assert.Contains(t, result.Summary, "space out analysis runs")
	assert.Contains(t, result.Summary, "Key stats:")
	assert.Contains(t, result.Summary, "Provider diagnostic: openai: 429 rate limit exceeded, retry later")
}

func TestAnalyzeQuotaExhaustionFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("insufficient_quota: billing hard limit reached")}
	a, err := New(&stubSource{points: makeSeries(25)}, provider)
	require.NoError(t, err)

	result, err := a.Analyze(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Summary, "rate-limited")
}

func TestAnalyzeProviderErrorPropagates(t *testing.T) {
	boom := errors.New("model overloaded, try a different deployment")
	a, err := New(&stubSource{points: makeSeries(25)}, &stubProvider{err: boom})
	require.NoError(t, err)

	_, err = a.Analyze(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestAnalyzeSourceErrorPropagates(t *testing.T) {
	provider := &stubProvider{text: "never"}
	a, err := New(&stubSource{err: market.ErrDataUnavailable}, provider)
	require.NoError(t, err)

	_, err = a.Analyze(context.Background())
	require.ErrorIs(t, err, market.ErrDataUnavailable)
	assert.Zero(t, provider.calls)
}

func TestAnalyzeShortSeries(t *testing.T) {
	provider := &stubProvider{text: "never"}
	a, err := New(&stubSource{points: makeSeries(1)}, provider)
	require.NoError(t, err)

	_, err = a.Analyze(context.Background())
	require.ErrorIs(t, err, ErrInsufficientData)
	assert.Zero(t, provider.calls)
}

func TestNewRequiresSource(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestFallbackDownwardDirections(t *testing.T) {
	gen := NewSummaryGenerator(nil, "", 0, 0)
	metrics := PriceMetrics{
		CurrentPrice: 1700,
		HourlyChange: -1.25,
		DailyChange:  -5.5,
		High24h:      1810,
		Low24h:       1690,
	}

	summary := gen.fallbackSummary(metrics, nil, FallbackOffline, "")
	assert.Contains(t, summary, "- Last hour: down 1.25%")
	assert.Contains(t, summary, "- Last 24h: lower by 5.50%")
}

func TestFallbackZeroLowSpread(t *testing.T) {
	gen := NewSummaryGenerator(nil, "", 0, 0)
	summary := gen.fallbackSummary(PriceMetrics{High24h: 10, Low24h: 0}, nil, FallbackOffline, "")
	assert.Contains(t, summary, "(0.00% spread)")
}
