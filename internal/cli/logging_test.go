package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pulse-api/internal/config"
)

func TestConfigSummaryLines(t *testing.T) {
	cfg := &config.Config{
		Env: "dev",
		TTL: config.CacheTTL{Short: 10, Medium: 60, Long: 300},
	}
	cfg.Market.File = "market.yaml"

	lines := ConfigSummaryLines(cfg)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "Environment: dev")
	assert.Contains(t, joined, "Postgres: not configured")
	assert.Contains(t, joined, "Market config: market.yaml")
	assert.Contains(t, joined, "LLM config: not configured")
	assert.Contains(t, joined, "Analysis model: provider default")
}

func TestConfigSummaryLinesNil(t *testing.T) {
	assert.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))
}
