// Package analyzer implements the ETH market analysis pipeline: fetch a
// price series, derive summary statistics, and explain them in natural
// language with a deterministic fallback when generation is unavailable.
package analyzer

import (
	"context"
	"errors"

	"pulse-api/pkg/llm"
	"pulse-api/pkg/market"
)

// Analyzer composes a market data source, the metrics calculator and the
// summary generator into a single Analyze call.
type Analyzer struct {
	source       market.Source
	generator    *SummaryGenerator
	recentWindow int
}

type analyzerConfig struct {
	model        string
	temperature  float64
	maxTokens    int
	recentWindow int
}

// Option customises the analyzer.
type Option func(*analyzerConfig)

// WithModel selects the generation model alias (defaults to the provider's
// default model).
func WithModel(model string) Option {
	return func(cfg *analyzerConfig) {
		if model != "" {
			cfg.model = model
		}
	}
}

// WithTemperature overrides the generation temperature.
func WithTemperature(temperature float64) Option {
	return func(cfg *analyzerConfig) {
		if temperature > 0 {
			cfg.temperature = temperature
		}
	}
}

// WithMaxTokens overrides the generation output cap.
func WithMaxTokens(maxTokens int) Option {
	return func(cfg *analyzerConfig) {
		if maxTokens > 0 {
			cfg.maxTokens = maxTokens
		}
	}
}

// WithRecentWindow overrides how many trailing observations are embedded in
// prompts and fallback summaries.
func WithRecentWindow(n int) Option {
	return func(cfg *analyzerConfig) {
		if n > 0 {
			cfg.recentWindow = n
		}
	}
}

// New constructs an analyzer. provider may be nil, which selects offline
// mode: every analysis produces the deterministic fallback summary.
func New(source market.Source, provider llm.Provider, opts ...Option) (*Analyzer, error) {
	if source == nil {
		return nil, errors.New("analyzer: market data source is required")
	}

	cfg := &analyzerConfig{
		temperature:  defaultTemperature,
		maxTokens:    defaultMaxTokens,
		recentWindow: RecentWindow,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Analyzer{
		source:       source,
		generator:    NewSummaryGenerator(provider, cfg.model, cfg.temperature, cfg.maxTokens),
		recentWindow: cfg.recentWindow,
	}, nil
}

// Analyze runs one full pipeline pass. It returns either a fully populated
// result or an error; partial results are never produced. Market data
// failures and non-rate-limit provider failures propagate unchanged.
func (a *Analyzer) Analyze(ctx context.Context) (*AnalysisResult, error) {
	points, err := a.source.FetchPricePoints(ctx)
	if err != nil {
		return nil, err
	}

	// The two-point precondition is re-checked here; a custom Source is
	// not trusted to enforce it.
	metrics, err := ComputeMetrics(points)
	if err != nil {
		return nil, err
	}

	summary, err := a.generator.Generate(ctx, metrics, recentPoints(points, a.recentWindow))
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{Metrics: metrics, Summary: summary}, nil
}
