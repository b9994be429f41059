package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zeromicro/go-zero/core/logx"

	"pulse-api/pkg/llm"
	"pulse-api/pkg/market"
	"pulse-api/pkg/prompt"
)

const (
	systemPrompt = "You are a cryptocurrency market analyst focusing on Ethereum (ETH)." +
		" Analyse short-term momentum, key levels, and potential catalysts without giving investment advice."

	userPromptTemplate = `Provide a concise analysis of ETH price action based on the following metrics and recent prices.
Current price: {{.CurrentPrice}}
1h change: {{.HourlyChange}}
24h change: {{.DailyChange}}
24h high: {{.High24h}}
24h low: {{.Low24h}}
Recent prices:
{{.RecentPrices}}Explain momentum, volatility, and notable support/resistance zones.`

	defaultTemperature = 0.3
	defaultMaxTokens   = 400

	// RecentWindow is the number of trailing observations embedded in the
	// prompt and in fallback summaries.
	RecentWindow = 6
)

var userTmpl = mustParseTemplate("eth_analysis_user", userPromptTemplate)

func mustParseTemplate(name, body string) *prompt.PromptTemplate {
	tmpl, err := prompt.ParsePromptTemplate(name, body, nil)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// FallbackReason tags why a deterministic summary was produced instead of a
// generated one.
type FallbackReason string

const (
	FallbackOffline   FallbackReason = "offline"
	FallbackRateLimit FallbackReason = "rate_limit"
)

// SummaryGenerator turns computed metrics into a human-readable commentary.
// A nil provider is a first-class configuration: it selects offline mode, in
// which only the deterministic fallback text is produced.
type SummaryGenerator struct {
	provider    llm.Provider
	model       string
	temperature float64
	maxTokens   int
}

// NewSummaryGenerator constructs a generator. provider may be nil.
func NewSummaryGenerator(provider llm.Provider, model string, temperature float64, maxTokens int) *SummaryGenerator {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &SummaryGenerator{
		provider:    provider,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

type userPromptData struct {
	CurrentPrice string
	HourlyChange string
	DailyChange  string
	High24h      string
	Low24h       string
	RecentPrices string
}

// Generate produces the summary for the given metrics. Generation failures
// classified as rate-limiting are converted into a fallback summary; any
// other provider failure propagates unchanged.
func (g *SummaryGenerator) Generate(ctx context.Context, metrics PriceMetrics, recent []market.PricePoint) (string, error) {
	if g.provider == nil {
		logx.WithContext(ctx).Info("generation provider absent, producing offline summary")
		return g.fallbackSummary(metrics, recent, FallbackOffline, ""), nil
	}

	userPrompt, err := userTmpl.Render(userPromptData{
		CurrentPrice: formatUSD(metrics.CurrentPrice),
		HourlyChange: fmt.Sprintf("%+.2f%%", metrics.HourlyChange),
		DailyChange:  fmt.Sprintf("%+.2f%%", metrics.DailyChange),
		High24h:      formatUSD(metrics.High24h),
		Low24h:       formatUSD(metrics.Low24h),
		RecentPrices: renderRecentLines(recent),
	})
	if err != nil {
		return "", fmt.Errorf("analyzer: render user prompt: %w", err)
	}

	logx.WithContext(ctx).Debugf("eth analysis prompt digest=%s", prompt.DigestString(userPrompt))

	maxTokens := g.maxTokens
	text, err := g.provider.Generate(ctx, systemPrompt, userPrompt, llm.GenerationConfig{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		if llm.IsRateLimited(err) {
			logx.WithContext(ctx).Slowf("generation rate-limited, producing fallback summary: %v", err)
			return g.fallbackSummary(metrics, recent, FallbackRateLimit, err.Error()), nil
		}
		return "", err
	}
	return text, nil
}

// fallbackSummary builds the deterministic commentary used when no provider
// is configured or generation is rate-limited. It performs no I/O; the layout
// (headline, note, key stats, recent prices, optional diagnostic) is stable
// so operators can parse it as plain text.
func (g *SummaryGenerator) fallbackSummary(m PriceMetrics, recent []market.PricePoint, reason FallbackReason, diagnostic string) string {
	hourlyDir := "up"
	if m.HourlyChange < 0 {
		hourlyDir = "down"
	}
	dailyDir := "higher"
	if m.DailyChange < 0 {
		dailyDir = "lower"
	}
	spread := PercentChange(m.Low24h, m.High24h)

	var b strings.Builder
	switch reason {
	case FallbackRateLimit:
		b.WriteString("ETH market summary (generation rate-limited).\n")
		b.WriteString("Note: space out analysis runs or raise the provider quota to restore generated commentary.\n")
	default:
		b.WriteString("ETH market summary (offline mode).\n")
		b.WriteString("Note: configure a generation provider to enable narrative commentary.\n")
	}

	b.WriteString("Key stats:\n")
	fmt.Fprintf(&b, "- Current price: %s\n", formatUSD(m.CurrentPrice))
	fmt.Fprintf(&b, "- Last hour: %s %.2f%%\n", hourlyDir, math.Abs(m.HourlyChange))
	fmt.Fprintf(&b, "- Last 24h: %s by %.2f%%\n", dailyDir, math.Abs(m.DailyChange))
	fmt.Fprintf(&b, "- 24h range: %s to %s (%.2f%% spread)\n", formatUSD(m.Low24h), formatUSD(m.High24h), spread)
	b.WriteString("Recent prices:\n")
	b.WriteString(renderRecentLines(recent))
	if diagnostic != "" {
		fmt.Fprintf(&b, "Provider diagnostic: %s\n", diagnostic)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRecentLines(points []market.PricePoint) string {
	var b strings.Builder
	for _, point := range points {
		fmt.Fprintf(&b, "- %s: %s\n", point.Timestamp.UTC().Format(time.RFC3339), formatUSD(point.Price))
	}
	return b.String()
}

func formatUSD(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
