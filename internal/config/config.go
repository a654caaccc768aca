// Package config defines the run configuration and how it is loaded.
//
// A Config is built once at startup, validated, and then treated as read-only.
package config

import (
	"fmt"
	"time"

	"github.com/pyhub-apps/motopace/pkg/classification"
	"github.com/pyhub-apps/motopace/pkg/event"
	"github.com/pyhub-apps/motopace/pkg/logger"
	"github.com/pyhub-apps/motopace/pkg/pdf"
	"github.com/pyhub-apps/motopace/pkg/practice"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir holds Race/, FP/ and the output CSV files.
	DataDir string `koanf:"data_dir"`

	// BaseURL and Series form the document URLs.
	BaseURL string `koanf:"base_url"`
	Series  string `koanf:"series"`

	// StartYear and EndYear bound the seasons, inclusive.
	StartYear  int      `koanf:"start_year"`
	EndYear    int      `koanf:"end_year"`
	EventCodes []string `koanf:"event_codes"`

	// HTTPTimeout bounds a single document download.
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	UserAgent   string        `koanf:"user_agent"`

	// MetricsFile, when set, receives a Prometheus textfile at the end of a run.
	MetricsFile string `koanf:"metrics_file"`

	// ThresholdFactor keeps laps no slower than best lap times this factor.
	ThresholdFactor float64 `koanf:"threshold_factor"`

	Classification classification.Template `koanf:"classification"`
	Practice       practice.Template       `koanf:"practice"`
}

// Defaults for the results server.
const (
	DefaultBaseURL   = "https://resources.motogp.com/files/results"
	DefaultSeries    = "MotoGP"
	DefaultUserAgent = "motopace/1.0"
)

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		DataDir:         "Data",
		BaseURL:         DefaultBaseURL,
		Series:          DefaultSeries,
		StartYear:       event.DefaultStartYear,
		EndYear:         event.DefaultEndYear,
		EventCodes:      event.DefaultCodes(),
		HTTPTimeout:     60 * time.Second,
		UserAgent:       DefaultUserAgent,
		ThresholdFactor: practice.DefaultThresholdFactor,
		Classification:  classification.DefaultTemplate(),
		Practice:        practice.DefaultTemplate(),
	}
}

// Universe returns the event universe described by the configuration.
func (c *Config) Universe() (event.Universe, error) {
	u, err := event.NewUniverse(c.StartYear, c.EndYear, c.EventCodes)
	if err != nil {
		return event.Universe{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return u, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.BaseURL == "" || c.Series == "" {
		return fmt.Errorf("%w: base_url and series must not be empty", ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http_timeout must be positive", ErrInvalidConfig)
	}
	if c.ThresholdFactor < 1 {
		return fmt.Errorf("%w: threshold_factor %.3f is below 1", ErrInvalidConfig, c.ThresholdFactor)
	}
	regions := map[string]pdf.Region{
		"classification.region": c.Classification.Region,
		"practice.left":         c.Practice.Left,
		"practice.right":        c.Practice.Right,
	}
	for key, region := range regions {
		if region.Area.Empty() {
			return fmt.Errorf("%w: %s area is empty", ErrInvalidConfig, key)
		}
	}
	if _, err := c.Universe(); err != nil {
		return err
	}
	return nil
}
