// Package nominatim implements domain.Geocoder against a Nominatim-compatible
// search endpoint (https://nominatim.org/release-docs/latest/api/Search/).
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/meeting-locator/internal/domain"
	"github.com/couchcryptid/meeting-locator/internal/observability"
)

// Client implements domain.Geocoder using the Nominatim search API.
type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client. The user agent identifies
// this deployment to the service, as its usage policy requires.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode resolves a free-text address to coordinates. An answered query with
// no results returns found=false and a nil error.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	params := url.Values{
		"q":              {address},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"0"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, false, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, false, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, false, fmt.Errorf("decode response: %w", err)
	}

	if len(places) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return domain.Coordinates{}, false, nil
	}

	coords, err := places[0].coordinates()
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.Coordinates{}, false, fmt.Errorf("parse coordinates: %w", err)
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	c.logger.Debug("geocoded address", "address", address, "lat", coords.Lat, "lon", coords.Lon)
	return coords, true, nil
}

// Nominatim API response types. Lat and lon arrive as decimal-degree strings.

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p place) coordinates() (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("lon %q: %w", p.Lon, err)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
