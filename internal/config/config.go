// Package config loads service settings from the environment. A .env file is
// honored when present; real environment variables always win. Provider
// integrations are feature-flagged: setting a provider's API key enables it
// unless its _ENABLED variable says otherwise.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"15s" validate:"gt=0"`

	OpenMeteoBaseURL string `envconfig:"OPEN_METEO_BASE_URL" default:"https://api.open-meteo.com" validate:"url"`
	GeocodeBaseURL   string `envconfig:"GEOCODE_BASE_URL" default:"https://maps.googleapis.com" validate:"url"`

	GoogleMapsAPIKey    string `envconfig:"GOOGLE_MAPS_API_KEY"`
	GoogleWeatherAPIKey string `envconfig:"GOOGLE_WEATHER_API_KEY"`
	RapidAPIKey         string `envconfig:"RAPIDAPI_KEY"`

	ClimatologyStartYear int `envconfig:"CLIMATOLOGY_START_YEAR" default:"2015" validate:"gte=1900"`
	ClimatologyEndYear   int `envconfig:"CLIMATOLOGY_END_YEAR" default:"2024" validate:"gte=1900,gtefield=ClimatologyStartYear"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"risk-assessments"`
	KafkaEnabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`

	// Derived from the API keys and the optional _ENABLED overrides.
	GeocodeEnabled       bool `ignored:"true"`
	GoogleWeatherEnabled bool `ignored:"true"`
	MeteostatEnabled     bool `ignored:"true"`
}

// Load reads configuration from the environment, applying defaults where
// unset. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cfg.GeocodeEnabled = cfg.GoogleMapsAPIKey != ""
	cfg.GoogleWeatherEnabled = featureFlag("GOOGLE_WEATHER_ENABLED", cfg.GoogleWeatherAPIKey != "")
	cfg.MeteostatEnabled = featureFlag("METEOSTAT_ENABLED", cfg.RapidAPIKey != "")

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}
	if cfg.GoogleWeatherEnabled && cfg.GoogleWeatherAPIKey == "" {
		return nil, errors.New("GOOGLE_WEATHER_ENABLED is true but GOOGLE_WEATHER_API_KEY is not set")
	}
	if cfg.MeteostatEnabled && cfg.RapidAPIKey == "" {
		return nil, errors.New("METEOSTAT_ENABLED is true but RAPIDAPI_KEY is not set")
	}

	return &cfg, nil
}

// featureFlag reports whether a key-gated feature is on: the key's presence
// enables it, and the named variable overrides in either direction.
func featureFlag(envName string, keyPresent bool) bool {
	if v := os.Getenv(envName); v != "" {
		return v == "true"
	}
	return keyPresent
}
