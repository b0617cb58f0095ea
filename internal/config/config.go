// Package config defines service configuration and its loader.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3001".
	Addr string `koanf:"addr"`

	// CatalogPath points at a JSON or YAML movie catalog. Empty uses the
	// embedded catalog.
	CatalogPath string `koanf:"catalog_path"`

	// StaticDir holds the built frontend. Empty disables the site.
	StaticDir string `koanf:"static_dir"`

	// RecommendationLimit caps the number of recommendations per request.
	RecommendationLimit int `koanf:"recommendation_limit"`

	// CORSAllowedOrigins lists the origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	ReadTimeoutMS     int `koanf:"read_timeout_ms"`
	WriteTimeoutMS    int `koanf:"write_timeout_ms"`
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":3001",
		StaticDir:           "client/dist",
		RecommendationLimit: 5,
		CORSAllowedOrigins:  []string{"*"},
		ReadTimeoutMS:       5_000,
		WriteTimeoutMS:      10_000,
		ShutdownTimeoutMS:   10_000,
	}
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.RecommendationLimit <= 0 {
		return fmt.Errorf("%w: recommendation_limit must be positive, got %d", ErrInvalidConfig, c.RecommendationLimit)
	}
	if c.ReadTimeoutMS < 0 || c.WriteTimeoutMS < 0 || c.ShutdownTimeoutMS < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
