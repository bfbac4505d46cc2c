// Package googleweather implements the secondary current-conditions source
// using the Google Weather API. It exists to give the confidence estimator a
// second opinion; assessments degrade gracefully when it is unavailable.
package googleweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/paradeguard/risk-engine/internal/domain"
	"github.com/paradeguard/risk-engine/internal/observability"
)

const providerName = "google-weather"

// Client fetches current conditions from the Google Weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Google Weather client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://weather.googleapis.com",
		logger:     logger,
		metrics:    metrics,
	}
}

// Current fetches the current-conditions snapshot for a location.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*domain.Current, error) {
	params := url.Values{
		"key":                {c.apiKey},
		"location.latitude":  {fmt.Sprintf("%.4f", lat)},
		"location.longitude": {fmt.Sprintf("%.4f", lon)},
	}
	fullURL := c.baseURL + "/v1/currentConditions:lookup?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	began := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(began).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("google weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google weather API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()

	return payload.toDomain(), nil
}

// Google Weather API response types. Measurements arrive as nested objects
// carrying a degrees/value plus a unit; only metric requests are issued, so
// units are taken as-is.

type response struct {
	CurrentTime      string           `json:"currentTime"`
	IsDaytime        *bool            `json:"isDaytime"`
	WeatherCondition weatherCondition `json:"weatherCondition"`
	Temperature      *measurement     `json:"temperature"`
	FeelsLike        *measurement     `json:"feelsLikeTemperature"`
	RelativeHumidity *float64         `json:"relativeHumidity"`
	UVIndex          *float64         `json:"uvIndex"`
	Precipitation    precipitation    `json:"precipitation"`
	Wind             wind             `json:"wind"`
	Visibility       *measurement     `json:"visibility"`
	CloudCover       *float64         `json:"cloudCover"`
}

type weatherCondition struct {
	Type string `json:"type"`
}

type measurement struct {
	Value *float64 `json:"degrees"`
	// Non-temperature measurements use "value" instead of "degrees".
	Plain *float64 `json:"value"`
}

func (m *measurement) get() *float64 {
	if m == nil {
		return nil
	}
	if m.Value != nil {
		return m.Value
	}
	return m.Plain
}

type precipitation struct {
	Probability struct {
		Percent *float64 `json:"percent"`
	} `json:"probability"`
	QPF *measurement `json:"qpf"`
}

type wind struct {
	Speed     *measurement `json:"speed"`
	Gust      *measurement `json:"gust"`
	Direction struct {
		Degrees *float64 `json:"degrees"`
	} `json:"direction"`
}

func (r response) toDomain() *domain.Current {
	cur := &domain.Current{
		Provider:                 providerName,
		Temperature:              r.Temperature.get(),
		ApparentTemperature:      r.FeelsLike.get(),
		Precipitation:            r.Precipitation.QPF.get(),
		PrecipitationProbability: r.Precipitation.Probability.Percent,
		WindSpeed:                r.Wind.Speed.get(),
		WindGusts:                r.Wind.Gust.get(),
		WindDirection:            r.Wind.Direction.Degrees,
		RelativeHumidity:         r.RelativeHumidity,
		CloudCover:               r.CloudCover,
		Visibility:               r.Visibility.get(),
		UVIndex:                  r.UVIndex,
		IsDay:                    r.IsDaytime,
		Condition:                r.WeatherCondition.Type,
	}
	if ts, err := time.Parse(time.RFC3339, r.CurrentTime); err == nil {
		cur.Time = ts
	}
	return cur
}
