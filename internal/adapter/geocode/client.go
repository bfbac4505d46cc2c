// Package geocode implements domain.Geocoder using the Google Geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paradeguard/risk-engine/internal/domain"
	"github.com/paradeguard/risk-engine/internal/observability"
)

const providerName = "google-geocode"

// ErrNoResults is returned when the API resolves no location for a query.
var ErrNoResults = errors.New("no geocoding results")

// Client resolves place names via the Google Geocoding API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a geocoding client.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
		metrics:    metrics,
	}
}

// Geocode resolves a free-text query to coordinates, taking the API's first
// result. Returns ErrNoResults when the API finds nothing.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Place, error) {
	params := url.Values{
		"address": {query},
		"key":     {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/maps/api/geocode/json?"+params.Encode(), nil)
	if err != nil {
		return domain.Place{}, fmt.Errorf("create request: %w", err)
	}

	began := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(began).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return domain.Place{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return domain.Place{}, fmt.Errorf("geocode API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return domain.Place{}, fmt.Errorf("decode response: %w", err)
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "empty").Inc()
		return domain.Place{}, fmt.Errorf("%w for %q", ErrNoResults, query)
	}
	if payload.Status != "OK" {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return domain.Place{}, fmt.Errorf("geocode API status %s", payload.Status)
	}
	c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()

	first := payload.Results[0]
	return domain.Place{
		Query:            query,
		FormattedAddress: first.FormattedAddress,
		Lat:              first.Geometry.Location.Lat,
		Lon:              first.Geometry.Location.Lng,
	}, nil
}

// Google Geocoding API response types.

type response struct {
	Status  string   `json:"status"`
	Results []result `json:"results"`
}

type result struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
