// Command riskd serves weather disruption risk assessments over HTTP and
// optionally publishes them to Kafka.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/paradeguard/risk-engine/internal/adapter/geocode"
	"github.com/paradeguard/risk-engine/internal/adapter/googleweather"
	"github.com/paradeguard/risk-engine/internal/adapter/httpapi"
	kafkaadapter "github.com/paradeguard/risk-engine/internal/adapter/kafka"
	"github.com/paradeguard/risk-engine/internal/adapter/meteostat"
	"github.com/paradeguard/risk-engine/internal/adapter/openmeteo"
	"github.com/paradeguard/risk-engine/internal/assess"
	"github.com/paradeguard/risk-engine/internal/config"
	"github.com/paradeguard/risk-engine/internal/domain"
	"github.com/paradeguard/risk-engine/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	forecasts := openmeteo.NewClient(cfg.OpenMeteoBaseURL, cfg.ProviderTimeout, logger, metrics)
	metrics.ProviderEnabled.WithLabelValues("open-meteo").Set(1)

	// Geocoding is feature-flagged via GOOGLE_MAPS_API_KEY.
	var geocoder domain.Geocoder
	if cfg.GeocodeEnabled {
		geocoder = geocode.NewClient(cfg.GoogleMapsAPIKey, cfg.GeocodeBaseURL, cfg.ProviderTimeout, logger, metrics)
		metrics.ProviderEnabled.WithLabelValues("google-geocode").Set(1)
		logger.Info("place geocoding enabled")
	} else {
		logger.Info("place geocoding disabled, queries must pass lat/lon")
	}

	// Second-opinion provider, flagged via GOOGLE_WEATHER_API_KEY / _ENABLED.
	var secondary assess.CurrentSource
	if cfg.GoogleWeatherEnabled {
		secondary = googleweather.NewClient(cfg.GoogleWeatherAPIKey, cfg.ProviderTimeout, logger, metrics)
		metrics.ProviderEnabled.WithLabelValues("google-weather").Set(1)
		logger.Info("google weather enabled")
	} else {
		logger.Info("google weather disabled")
	}

	// Historical climatology, flagged via RAPIDAPI_KEY / METEOSTAT_ENABLED.
	var climatology assess.ClimatologySource
	if cfg.MeteostatEnabled {
		climatology = meteostat.NewClient(cfg.RapidAPIKey, cfg.ProviderTimeout,
			cfg.ClimatologyStartYear, cfg.ClimatologyEndYear, logger, metrics)
		metrics.ProviderEnabled.WithLabelValues("meteostat").Set(1)
		logger.Info("meteostat climatology enabled",
			"start_year", cfg.ClimatologyStartYear, "end_year", cfg.ClimatologyEndYear)
	} else {
		logger.Info("meteostat climatology disabled")
	}

	var publisher assess.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	assessor := assess.New(forecasts, secondary, climatology, publisher, logger, metrics)
	srv := httpapi.NewServer(cfg.HTTPAddr, assessor, geocoder, assessor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
