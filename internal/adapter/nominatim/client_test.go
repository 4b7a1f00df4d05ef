package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/meeting-locator/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserAgent     = "meeting-locator-test/0.0"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		userAgent:  testUserAgent,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100 Main St, Springfield", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		resp := []place{
			{Lat: "42.0", Lon: "-71.0", DisplayName: "100, Main Street, Springfield"},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	coords, found, err := c.Geocode(context.Background(), "100 Main St, Springfield")
	require.NoError(t, err)

	assert.True(t, found)
	assert.Equal(t, 42.0, coords.Lat)
	assert.Equal(t, -71.0, coords.Lon)
}

func TestClient_Geocode_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, found, err := c.Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err, "no results is not an error")
	assert.False(t, found)
}

func TestClient_Geocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, found, err := c.Geocode(context.Background(), "100 Main St")
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_Geocode_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.Geocode(context.Background(), "100 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Geocode_UnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[{"lat":"forty-two","lon":"-71.0"}]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.Geocode(context.Background(), "100 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse coordinates")
}

func TestClient_Geocode_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := testClient(srv.URL)
	_, _, err := c.Geocode(context.Background(), "100 Main St")
	require.Error(t, err)
}
