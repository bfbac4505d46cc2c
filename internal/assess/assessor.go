// Package assess orchestrates one assessment query: fetch forecast and
// auxiliary data in parallel, slice the horizon to the requested day-part,
// score it, and optionally publish the result. The forecast provider is the
// only hard dependency; every other source degrades to a note on the result.
package assess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paradeguard/risk-engine/internal/domain"
	"github.com/paradeguard/risk-engine/internal/observability"
)

// ForecastSource fetches the hourly forecast horizon for a location.
type ForecastSource interface {
	Forecast(ctx context.Context, lat, lon float64, start, end time.Time) (domain.Forecast, error)
}

// CurrentSource fetches a second opinion on current conditions.
type CurrentSource interface {
	Current(ctx context.Context, lat, lon float64) (*domain.Current, error)
}

// ClimatologySource fetches monthly historical normals for a location.
type ClimatologySource interface {
	MonthlyClimatology(ctx context.Context, lat, lon float64) ([]domain.ClimatologyMonth, error)
}

// Publisher emits a completed assessment downstream.
type Publisher interface {
	PublishAssessment(ctx context.Context, result Result) error
}

// Request is one assessment query. Lat/Lon are already resolved; place-name
// resolution happens at the transport layer.
type Request struct {
	Place  domain.Place
	Date   time.Time
	Window domain.DayPart
}

// Result is the full payload for one assessment query.
type Result struct {
	Place            domain.Place                 `json:"place"`
	Date             string                       `json:"date"`
	Window           string                       `json:"window"`
	WindowLabel      string                       `json:"window_label"`
	WindowStart      time.Time                    `json:"window_start"`
	WindowEnd        time.Time                    `json:"window_end"`
	Timezone         string                       `json:"timezone"`
	Assessment       domain.RiskAssessment        `json:"assessment"`
	Stats            map[string]domain.SliceStats `json:"window_stats"`
	Climatology      *domain.Climatology          `json:"climatology,omitempty"`
	Current          *domain.Current              `json:"current,omitempty"`
	SecondaryCurrent *domain.Current              `json:"secondary_current,omitempty"`
	Providers        []string                     `json:"providers"`
	Notes            []string                     `json:"notes,omitempty"`
}

// Assessor wires the data sources to the scoring engine.
type Assessor struct {
	forecasts   ForecastSource
	secondary   CurrentSource
	climatology ClimatologySource
	publisher   Publisher
	thresholds  domain.Thresholds
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates an Assessor. secondary, climatology, and publisher may be nil
// when the matching integrations are disabled.
func New(forecasts ForecastSource, secondary CurrentSource, climatology ClimatologySource, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{
		forecasts:   forecasts,
		secondary:   secondary,
		climatology: climatology,
		publisher:   publisher,
		thresholds:  domain.DefaultThresholds(),
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once the assessor has served at least one
// successful assessment.
func (a *Assessor) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("no assessment served yet")
	}
	return nil
}

// Assess runs one query end to end. The forecast fetch is fatal on failure;
// the secondary provider and climatology degrade into result notes.
func (a *Assessor) Assess(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	result, err := a.assess(ctx, req)
	if err != nil {
		a.metrics.AssessmentErrors.Inc()
		return Result{}, err
	}

	a.metrics.AssessmentsTotal.Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.ready.Store(true)

	a.publish(ctx, result)
	return result, nil
}

func (a *Assessor) assess(ctx context.Context, req Request) (Result, error) {
	horizonStart := req.Date.AddDate(0, 0, -1)
	horizonEnd := req.Date.AddDate(0, 0, 1)

	var (
		forecast  domain.Forecast
		secondary *domain.Current
		months    []domain.ClimatologyMonth
		notes     []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forecast, err = a.forecasts.Forecast(gctx, req.Place.Lat, req.Place.Lon, horizonStart, horizonEnd)
		if err != nil {
			return fmt.Errorf("fetch forecast: %w", err)
		}
		return nil
	})

	// Auxiliary fetches use the request context, not the group context, so a
	// forecast failure does not also surface as their cancellation.
	var secondaryErr, climatologyErr error
	if a.secondary != nil {
		g.Go(func() error {
			secondary, secondaryErr = a.secondary.Current(ctx, req.Place.Lat, req.Place.Lon)
			return nil
		})
	}
	if a.climatology != nil {
		g.Go(func() error {
			months, climatologyErr = a.climatology.MonthlyClimatology(ctx, req.Place.Lat, req.Place.Lon)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if secondaryErr != nil {
		a.logger.Warn("secondary provider unavailable", "error", secondaryErr)
		notes = append(notes, "secondary provider unavailable; confidence may be reduced")
	}
	if climatologyErr != nil {
		a.logger.Warn("climatology unavailable", "error", climatologyErr)
		notes = append(notes, "historical climatology unavailable")
	}

	loc, err := time.LoadLocation(forecast.Timezone)
	if err != nil || forecast.Timezone == "" {
		loc = time.UTC
		notes = append(notes, "location timezone unknown; windows use UTC")
	}

	assessment := a.thresholds.Assess(&forecast.Hourly, forecast.Current, secondary, req.Window)
	assessment.ID = domain.AssessmentID(req.Place.Lat, req.Place.Lon, req.Date, req.Window)

	windowStart, windowEnd := domain.WindowBounds(req.Date, req.Window, loc)

	result := Result{
		Place:            req.Place,
		Date:             req.Date.Format("2006-01-02"),
		Window:           req.Window.String(),
		WindowLabel:      req.Window.Label(),
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
		Timezone:         loc.String(),
		Assessment:       assessment,
		Stats:            a.windowStats(forecast.Hourly, req.Date, req.Window, loc),
		Current:          forecast.Current,
		SecondaryCurrent: secondary,
		Providers:        a.providers(secondary),
		Notes:            notes,
	}

	if len(months) > 0 {
		c := domain.NewClimatology(months)
		result.Climatology = &c
	}

	return result, nil
}

// windowStats summarizes each hourly series inside the requested window.
func (a *Assessor) windowStats(hourly domain.Hourly, date time.Time, part domain.DayPart, loc *time.Location) map[string]domain.SliceStats {
	series := map[string][]*float64{
		"temperature":               hourly.Temperature,
		"apparent_temperature":      hourly.ApparentTemperature,
		"precipitation":             hourly.Precipitation,
		"precipitation_probability": hourly.PrecipitationProbability,
		"wind_speed":                hourly.WindSpeed,
		"wind_gusts":                hourly.WindGusts,
		"relative_humidity":         hourly.RelativeHumidity,
		"cloud_cover":               hourly.CloudCover,
	}

	stats := make(map[string]domain.SliceStats, len(series))
	for name, values := range series {
		if len(values) == 0 {
			continue
		}
		stats[name] = domain.WindowStats(hourly.Times, values, date, part, loc)
	}
	return stats
}

func (a *Assessor) providers(secondary *domain.Current) []string {
	providers := []string{"open-meteo"}
	if secondary != nil {
		providers = append(providers, secondary.Provider)
	}
	if a.climatology != nil {
		providers = append(providers, "meteostat")
	}
	return providers
}

// publish sends the result downstream when a publisher is configured.
// Publish failures are logged and counted but never fail the request.
func (a *Assessor) publish(ctx context.Context, result Result) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishAssessment(ctx, result); err != nil {
		a.logger.Warn("publish assessment failed", "error", err, "id", result.Assessment.ID)
		a.metrics.PublishErrors.Inc()
	}
}
