package market

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) FetchPricePoints(ctx context.Context) ([]PricePoint, error) {
	return nil, nil
}

func init() {
	RegisterSource("stub", func(name string, cfg *SourceConfig) (Source, error) {
		return stubSource{}, nil
	})
}

func TestLoadConfigFromReader(t *testing.T) {
	data := `
default: primary
sources:
  primary:
    type: stub
    coin: ethereum
    vs_currency: usd
    days: 1
    interval: hourly
    timeout: 10s
`
	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "primary", cfg.Default)

	source := cfg.Sources["primary"]
	require.NotNil(t, source)
	require.Equal(t, "stub", source.Type)
	require.Equal(t, "ethereum", source.Coin)
	require.Equal(t, 1.0, source.Days)
	require.Equal(t, 10*time.Second, source.Timeout)

	built, err := cfg.BuildDefault()
	require.NoError(t, err)
	require.NotNil(t, built)
}

func TestLoadConfigRejectsUnknownType(t *testing.T) {
	data := `
sources:
  primary:
    type: does-not-exist
`
	_, err := LoadConfigFromReader(strings.NewReader(data))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported type")
}

func TestLoadConfigRejectsUnknownDefault(t *testing.T) {
	data := `
default: missing
sources:
  primary:
    type: stub
`
	_, err := LoadConfigFromReader(strings.NewReader(data))
	require.Error(t, err)
	require.Contains(t, err.Error(), "default source")
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	data := `
sources:
  primary:
    type: stub
    timeout: soon
`
	_, err := LoadConfigFromReader(strings.NewReader(data))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid timeout")
}

func TestExpandEnvInSourceConfig(t *testing.T) {
	t.Setenv("TEST_MARKET_COIN", "ethereum")

	data := `
sources:
  primary:
    type: stub
    coin: ${TEST_MARKET_COIN}
`
	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "ethereum", cfg.Sources["primary"].Coin)
}
