package coingecko

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
)

// This test uses go-vcr to record/replay a real market_chart call.
// It skips by default if cassette is absent and RECORD_CASSETTES != 1.
func TestClient_MarketChart_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "coingecko_market_chart.yaml")
	if _, err := os.Stat(cassette); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s", cassette)
		}
		err := os.MkdirAll(filepath.Dir(cassette), 0o755)
		assert.NoError(t, err, "mkdir cassettes dir should succeed")
	}

	r, err := recorder.New(cassette)
	assert.NoError(t, err, "recorder.New should not error")
	assert.NotNil(t, r, "recorder should not be nil")
	defer func() { _ = r.Stop() }()

	httpClient := &http.Client{Transport: r}
	client := NewClient(WithHTTPClient(httpClient))
	ctx := context.Background()
	points, err := client.MarketChart(ctx, "ethereum", "usd", 1.0, "hourly")
	assert.NoError(t, err, "MarketChart should not error")
	assert.GreaterOrEqual(t, len(points), 2, "series should have at least two points")
	for _, point := range points {
		assert.Greater(t, point.Price, 0.0, "price should be positive")
		assert.False(t, point.Timestamp.IsZero(), "timestamp should be set")
	}
}
