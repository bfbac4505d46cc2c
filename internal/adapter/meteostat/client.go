// Package meteostat fetches monthly historical climatology from the
// Meteostat API via RapidAPI. The data feeds month-against-history
// percentiles on assessment results.
package meteostat

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

const (
	providerName = "meteostat"
	rapidAPIHost = "meteostat.p.rapidapi.com"
)

// Client fetches monthly climatology records from Meteostat.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	startYear  int
	endYear    int
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Meteostat client covering [startYear, endYear].
func NewClient(apiKey string, timeout time.Duration, startYear, endYear int, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://" + rapidAPIHost,
		startYear:  startYear,
		endYear:    endYear,
		logger:     logger,
		metrics:    metrics,
	}
}

// MonthlyClimatology fetches the monthly records for a location across the
// configured year range.
func (c *Client) MonthlyClimatology(ctx context.Context, lat, lon float64) ([]domain.ClimatologyMonth, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", lat)},
		"lon":   {fmt.Sprintf("%.4f", lon)},
		"start": {fmt.Sprintf("%d-01-01", c.startYear)},
		"end":   {fmt.Sprintf("%d-12-31", c.endYear)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/point/monthly?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", rapidAPIHost)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	began := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(began).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("meteostat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("meteostat API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()

	months := make([]domain.ClimatologyMonth, 0, len(payload.Data))
	for _, row := range payload.Data {
		m, ok := row.toDomain()
		if !ok {
			c.logger.Warn("skipping malformed climatology row", "date", row.Date)
			continue
		}
		months = append(months, m)
	}
	return months, nil
}

// Meteostat API response types. Rows date as "2015-01-01", one per month.

type response struct {
	Data []monthlyRow `json:"data"`
}

type monthlyRow struct {
	Date string   `json:"date"`
	Tavg *float64 `json:"tavg"`
	Tmin *float64 `json:"tmin"`
	Tmax *float64 `json:"tmax"`
	Prcp *float64 `json:"prcp"`
	Tsun *float64 `json:"tsun"`
	Pres *float64 `json:"pres"`
}

func (r monthlyRow) toDomain() (domain.ClimatologyMonth, bool) {
	// Some responses carry a trailing time component; keep the date part.
	dateStr := r.Date
	if i := strings.IndexByte(dateStr, ' '); i >= 0 {
		dateStr = dateStr[:i]
	}
	ts, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return domain.ClimatologyMonth{}, false
	}

	return domain.ClimatologyMonth{
		Date:           dateStr,
		Month:          int(ts.Month()),
		Year:           ts.Year(),
		AvgTemperature: r.Tavg,
		MinTemperature: r.Tmin,
		MaxTemperature: r.Tmax,
		Precipitation:  r.Prcp,
		Sunshine:       r.Tsun,
		Pressure:       r.Pres,
	}, true
}
