// Package openmeteo implements the primary forecast source using the
// Open-Meteo forecast API. Open-Meteo needs no API key and reports the
// location's IANA timezone alongside the data when asked for timezone=auto.
package openmeteo

import (
	"context"
	"encoding/json"
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

const providerName = "open-meteo"

var hourlyFields = []string{
	"temperature_2m",
	"apparent_temperature",
	"precipitation",
	"precipitation_probability",
	"wind_speed_10m",
	"wind_gusts_10m",
	"relative_humidity_2m",
	"cloud_cover",
	"visibility",
	"uv_index",
	"is_day",
}

var currentFields = []string{
	"temperature_2m",
	"apparent_temperature",
	"precipitation",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
	"relative_humidity_2m",
	"cloud_cover",
	"is_day",
}

// Client fetches forecasts from the Open-Meteo API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an Open-Meteo client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
		metrics:    metrics,
	}
}

// Forecast fetches the hourly horizon plus current conditions for a location.
// Timestamps arrive in the location's local time; they are parsed in the
// reported timezone so day-part windows line up with local wall clocks.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, start, end time.Time) (domain.Forecast, error) {
	params := url.Values{
		"latitude":   {fmt.Sprintf("%.4f", lat)},
		"longitude":  {fmt.Sprintf("%.4f", lon)},
		"timezone":   {"auto"},
		"hourly":     {strings.Join(hourlyFields, ",")},
		"current":    {strings.Join(currentFields, ",")},
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
	}

	began := time.Now()
	payload, err := c.doRequest(ctx, c.baseURL+"/v1/forecast?"+params.Encode())
	c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(began).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return domain.Forecast{}, err
	}
	c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()

	loc, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		c.logger.Warn("unknown timezone from provider, using UTC", "timezone", payload.Timezone)
		loc = time.UTC
	}

	forecast := domain.Forecast{
		Timezone: payload.Timezone,
		Hourly:   payload.Hourly.toDomain(loc),
	}
	if payload.Current != nil {
		forecast.Current = payload.Current.toDomain(loc)
	}
	return forecast, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}

// Open-Meteo API response types.

type response struct {
	Timezone string          `json:"timezone"`
	Hourly   hourlyPayload   `json:"hourly"`
	Current  *currentPayload `json:"current"`
}

type hourlyPayload struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	ApparentTemperature      []*float64 `json:"apparent_temperature"`
	Precipitation            []*float64 `json:"precipitation"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
	WindGusts                []*float64 `json:"wind_gusts_10m"`
	RelativeHumidity         []*float64 `json:"relative_humidity_2m"`
	CloudCover               []*float64 `json:"cloud_cover"`
	Visibility               []*float64 `json:"visibility"` // meters
	UVIndex                  []*float64 `json:"uv_index"`
	IsDay                    []*int     `json:"is_day"`
}

type currentPayload struct {
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	Precipitation       *float64 `json:"precipitation"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	WindDirection       *float64 `json:"wind_direction_10m"`
	WindGusts           *float64 `json:"wind_gusts_10m"`
	RelativeHumidity    *float64 `json:"relative_humidity_2m"`
	CloudCover          *float64 `json:"cloud_cover"`
	IsDay               *int     `json:"is_day"`
}

func (h hourlyPayload) toDomain(loc *time.Location) domain.Hourly {
	times := make([]time.Time, len(h.Time))
	for i, s := range h.Time {
		// Unparseable timestamps become zero times so positional alignment
		// with the value series survives; zero times never land in a window.
		times[i], _ = parseLocalTime(s, loc)
	}

	return domain.Hourly{
		Times:                    times,
		Temperature:              h.Temperature,
		ApparentTemperature:      h.ApparentTemperature,
		Precipitation:            h.Precipitation,
		PrecipitationProbability: h.PrecipitationProbability,
		WindSpeed:                h.WindSpeed,
		WindGusts:                h.WindGusts,
		RelativeHumidity:         h.RelativeHumidity,
		CloudCover:               h.CloudCover,
		Visibility:               metersToKm(h.Visibility),
		UVIndex:                  h.UVIndex,
		IsDay:                    intFlags(h.IsDay),
	}
}

func (c currentPayload) toDomain(loc *time.Location) *domain.Current {
	ts, _ := parseLocalTime(c.Time, loc)
	return &domain.Current{
		Provider:            providerName,
		Time:                ts,
		Temperature:         c.Temperature,
		ApparentTemperature: c.ApparentTemperature,
		Precipitation:       c.Precipitation,
		WindSpeed:           c.WindSpeed,
		WindDirection:       c.WindDirection,
		WindGusts:           c.WindGusts,
		RelativeHumidity:    c.RelativeHumidity,
		CloudCover:          c.CloudCover,
		IsDay:               intFlag(c.IsDay),
	}
}

// parseLocalTime parses Open-Meteo's local timestamps ("2006-01-02T15:04")
// in the given location.
func parseLocalTime(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", s, loc)
}

// metersToKm converts the API's visibility in meters to kilometers.
func metersToKm(values []*float64) []*float64 {
	if values == nil {
		return nil
	}
	out := make([]*float64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		km := *v / 1000
		out[i] = &km
	}
	return out
}

func intFlags(values []*int) []*bool {
	if values == nil {
		return nil
	}
	out := make([]*bool, len(values))
	for i, v := range values {
		out[i] = intFlag(v)
	}
	return out
}

func intFlag(v *int) *bool {
	if v == nil {
		return nil
	}
	b := *v == 1
	return &b
}
