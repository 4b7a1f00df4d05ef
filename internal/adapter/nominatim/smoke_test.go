//go:build nominatim

package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/couchcryptid/meeting-locator/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the public Nominatim instance and are rate-limited to one
// request per second by its usage policy.
// Run with: go test -tags=nominatim ./internal/adapter/nominatim/ -v -count=1

func smokeClient() *Client {
	return &Client{
		userAgent:  "meeting-locator-smoke-test/1.0",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://nominatim.openstreetmap.org/search",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_Geocode(t *testing.T) {
	c := smokeClient()

	coords, found, err := c.Geocode(context.Background(), "1 City Hall Square, Boston, MA 02201")
	require.NoError(t, err)
	require.True(t, found)

	assert.InDelta(t, 42.36, coords.Lat, 0.1, "lat should be near Boston City Hall")
	assert.InDelta(t, -71.06, coords.Lon, 0.1, "lon should be near Boston City Hall")
}

func TestSmoke_Geocode_NoResults(t *testing.T) {
	c := smokeClient()

	_, found, err := c.Geocode(context.Background(), "zzzz no such place 99999 qqqq")
	require.NoError(t, err)
	assert.False(t, found)
}
