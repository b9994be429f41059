package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"pulse-api/pkg/market"
)

func newChartServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestSourceFetchPricePoints(t *testing.T) {
	server := newChartServer(t, `{
		"prices": [
			[1704067200000, 1800.0],
			[1704070800000, 1810.0],
			[1704074400000, 1820.0]
		]
	}`, http.StatusOK)
	defer server.Close()

	source := NewSource(WithClientOptions(WithBaseURL(server.URL), WithHTTPClient(server.Client())))
	points, err := source.FetchPricePoints(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Chronological ascending order is preserved as returned upstream.
	require.True(t, points[0].Timestamp.Before(points[1].Timestamp))
	require.True(t, points[1].Timestamp.Before(points[2].Timestamp))
}

func TestSourceTooFewPoints(t *testing.T) {
	server := newChartServer(t, `{"prices": [[1704067200000, 1800.0]]}`, http.StatusOK)
	defer server.Close()

	source := NewSource(WithClientOptions(WithBaseURL(server.URL), WithHTTPClient(server.Client())))
	_, err := source.FetchPricePoints(context.Background())
	require.ErrorIs(t, err, market.ErrDataUnavailable)
}

func TestSourceTransportFailure(t *testing.T) {
	server := newChartServer(t, `{"error":"rate limited upstream"}`, http.StatusTooManyRequests)
	defer server.Close()

	source := NewSource(WithClientOptions(WithBaseURL(server.URL), WithHTTPClient(server.Client())))
	_, err := source.FetchPricePoints(context.Background())
	require.ErrorIs(t, err, market.ErrDataUnavailable)
}

func TestSourceRegisteredBuilder(t *testing.T) {
	cfg := &market.SourceConfig{
		Type:       "coingecko",
		Coin:       "ethereum",
		VsCurrency: "usd",
		Days:       1.0,
		Interval:   "hourly",
	}

	sources, err := (&market.Config{
		Sources: map[string]*market.SourceConfig{"primary": cfg},
	}).BuildSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.IsType(t, &Source{}, sources["primary"])
}
