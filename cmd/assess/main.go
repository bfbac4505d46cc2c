// Command assess runs a single risk assessment from the command line and
// prints the result as JSON. It reuses the service configuration, so the same
// environment variables control providers, but never publishes to Kafka.
//
// Usage:
//
//	go run ./cmd/assess -place "Kochi, Kerala" -date 2026-09-12 -window Evening
//	go run ./cmd/assess -lat 9.93 -lon 76.26 -date 2026-09-12
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/paradeguard/risk-engine/internal/adapter/geocode"
	"github.com/paradeguard/risk-engine/internal/adapter/googleweather"
	"github.com/paradeguard/risk-engine/internal/adapter/meteostat"
	"github.com/paradeguard/risk-engine/internal/adapter/openmeteo"
	"github.com/paradeguard/risk-engine/internal/assess"
	"github.com/paradeguard/risk-engine/internal/config"
	"github.com/paradeguard/risk-engine/internal/domain"
	"github.com/paradeguard/risk-engine/internal/observability"
)

func main() {
	place := flag.String("place", "", "place name to geocode")
	lat := flag.Float64("lat", 0, "latitude (with -lon, skips geocoding)")
	lon := flag.Float64("lon", 0, "longitude")
	date := flag.String("date", time.Now().Format("2006-01-02"), "target date, YYYY-MM-DD")
	window := flag.String("window", "Evening", "day-part window: Morning, Afternoon, Evening, Night")
	timeout := flag.Duration("timeout", 60*time.Second, "overall deadline")
	flag.Parse()

	coordsGiven := flagPassed("lat") && flagPassed("lon")
	if *place == "" && !coordsGiven {
		fmt.Fprintln(os.Stderr, "either -place or -lat/-lon is required")
		flag.Usage()
		os.Exit(1)
	}

	targetDate, err := time.Parse("2006-01-02", *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -date %q: must be YYYY-MM-DD\n", *date)
		os.Exit(1)
	}

	if code := run(*place, *lat, *lon, coordsGiven, targetDate, *window, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(place string, lat, lon float64, coordsGiven bool, date time.Time, window string, timeout time.Duration) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	target := domain.Place{Query: place, Lat: lat, Lon: lon}
	if !coordsGiven {
		if !cfg.GeocodeEnabled {
			fmt.Fprintln(os.Stderr, "GOOGLE_MAPS_API_KEY is not set; pass -lat and -lon instead of -place")
			return 1
		}
		geocoder := geocode.NewClient(cfg.GoogleMapsAPIKey, cfg.GeocodeBaseURL, cfg.ProviderTimeout, logger, metrics)
		target, err = geocoder.Geocode(ctx, place)
		if err != nil {
			fmt.Fprintln(os.Stderr, "geocoding failed:", err)
			return 1
		}
	}

	forecasts := openmeteo.NewClient(cfg.OpenMeteoBaseURL, cfg.ProviderTimeout, logger, metrics)

	var secondary assess.CurrentSource
	if cfg.GoogleWeatherEnabled {
		secondary = googleweather.NewClient(cfg.GoogleWeatherAPIKey, cfg.ProviderTimeout, logger, metrics)
	}
	var climatology assess.ClimatologySource
	if cfg.MeteostatEnabled {
		climatology = meteostat.NewClient(cfg.RapidAPIKey, cfg.ProviderTimeout,
			cfg.ClimatologyStartYear, cfg.ClimatologyEndYear, logger, metrics)
	}

	assessor := assess.New(forecasts, secondary, climatology, nil, logger, metrics)

	result, err := assessor.Assess(ctx, assess.Request{
		Place:  target,
		Date:   date,
		Window: domain.ParseDayPart(window),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "assessment failed:", err)
		return 1
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode result:", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}
