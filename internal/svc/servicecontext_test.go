package svc_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-api/internal/config"
	"pulse-api/internal/svc"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewServiceContextMinimal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pulse.yaml", "Name: pulse\nHost: 0.0.0.0\nPort: 8888\n")

	cfg := config.MustLoad(path)
	ctx := svc.NewServiceContext(*cfg, cfg.MainPath())

	assert.Nil(t, ctx.Provider)
	assert.Nil(t, ctx.MarketSource)
	assert.Nil(t, ctx.Analyzer)
	assert.Nil(t, ctx.Rewriter)
	assert.Nil(t, ctx.Analyses)
	assert.Equal(t, 10*time.Second, ctx.TTL.Short)
}

func TestNewServiceContextOfflineAnalyzer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "market.yaml", `default: coingecko
sources:
  coingecko:
    type: coingecko
    coin: ethereum
    vs_currency: usd
    days: 1
    interval: hourly
`)
	path := writeFile(t, dir, "pulse.yaml", `Name: pulse
Host: 0.0.0.0
Port: 8888
Market:
  File: market.yaml
`)

	cfg := config.MustLoad(path)
	ctx := svc.NewServiceContext(*cfg, cfg.MainPath())

	require.NotNil(t, ctx.MarketSource)
	// No LLM section configured: analyses run in offline fallback mode.
	assert.Nil(t, ctx.Provider)
	assert.NotNil(t, ctx.Analyzer)
	assert.Nil(t, ctx.Rewriter)
}
