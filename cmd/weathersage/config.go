package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/weathersage/sage/pkg/logger"
	"github.com/weathersage/sage/pkg/sage"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	SummaryTimeout  time.Duration `env:"SUMMARY_TIMEOUT" envDefault:"50s"`
	Timezone        string        `env:"TIMEZONE" envDefault:"Europe/London"`
	HTMXScript      string        `env:"HTMX_SCRIPT" envDefault:"https://unpkg.com/htmx.org@2.0.4"`

	// RedisURL selects the shared summary cache. Empty keeps it in memory.
	RedisURL string `env:"REDIS_URL"`

	Forecast ForecastConfig
	Warmer   WarmerConfig
	OpenAI   sage.OpenAIConfig
	Log      logger.SentryConfig
}

// ForecastConfig selects the forecast source.
type ForecastConfig struct {
	APIKey  string `env:"MET_OFFICE_KEY"`
	DataURL string `env:"MET_OFFICE_DATA_URL" envDefault:"http://datapoint.metoffice.gov.uk/public/data/val/wxfcs/all/json/310069"`
	// Sample serves the bundled forecast instead of calling the Met Office.
	Sample bool `env:"FORECAST_SAMPLE"`
}

// WarmerConfig configures the hourly pre-computation.
type WarmerConfig struct {
	Schedule string `env:"WARM_SCHEDULE" envDefault:"0 * * * *"`
	OnStart  bool   `env:"WARM_ON_START" envDefault:"true"`
	Disabled bool   `env:"WARM_DISABLED"`
}

// loadConfig parses the environment and checks the settings that have no
// usable default.
func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if !cfg.Forecast.Sample && cfg.Forecast.APIKey == "" {
		return Config{}, errors.New("config: MET_OFFICE_KEY is required unless FORECAST_SAMPLE is set")
	}
	if cfg.OpenAI.APIKey == "" {
		return Config{}, errors.New("config: OPENAI_API_KEY is required")
	}
	if cfg.SummaryTimeout >= cfg.WriteTimeout {
		return Config{}, fmt.Errorf("config: SUMMARY_TIMEOUT (%s) must be shorter than WRITE_TIMEOUT (%s)", cfg.SummaryTimeout, cfg.WriteTimeout)
	}
	return cfg, nil
}

// location resolves the configured time zone.
func (c Config) location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
