package journal

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-api/pkg/analyzer"
)

func TestWriteRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.nowFn = func() time.Time { return time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC) }

	path, err := w.WriteRun(&RunRecord{
		Source:  "coingecko",
		Model:   "gpt-4o-mini",
		Metrics: &analyzer.PriceMetrics{CurrentPrice: 2040},
		Summary: "steady climb",
		Success: true,
	})
	require.NoError(t, err)
	assert.Contains(t, path, "run_20240302_120000_00001.json")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec RunRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, 1, rec.RunNumber)
	assert.Equal(t, "coingecko", rec.Source)
	assert.Equal(t, 2040.0, rec.Metrics.CurrentPrice)
	assert.True(t, rec.Success)
}

func TestWriteRunSequencing(t *testing.T) {
	w := NewWriter(t.TempDir())

	first, err := w.WriteRun(&RunRecord{Success: true})
	require.NoError(t, err)
	second, err := w.WriteRun(&RunRecord{Success: false, ErrorMessage: "market: price data unavailable"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestWriteRunNil(t *testing.T) {
	w := NewWriter(t.TempDir())
	_, err := w.WriteRun(nil)
	require.Error(t, err)
}
