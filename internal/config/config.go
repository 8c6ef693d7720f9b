// Package config provides runtime configuration values for the service.
package config

import (
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/catalog"
	"github.com/fairyhunter13/versioned-product-api/internal/version"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds configuration knobs for the HTTP server, version negotiation,
// the product stores and the change feed.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`

	DefaultAPIVersion string `envconfig:"DEFAULT_API_VERSION" default:"1.0"`
	VersionHeader     string `envconfig:"API_VERSION_HEADER" default:"X-API-Version"`
	VersionQuery      string `envconfig:"API_VERSION_QUERY" default:"api-version"`

	StoreLayout string `envconfig:"STORE_LAYOUT" default:"shared"`
	SeedCatalog bool   `envconfig:"SEED_CATALOG" default:"true"`

	AuditWorkers int `envconfig:"AUDIT_WORKERS" default:"2"`
	AuditBuffer  int `envconfig:"AUDIT_BUFFER" default:"128"`
	AuditHistory int `envconfig:"AUDIT_HISTORY" default:"256"`
}

// Load collects configuration from the environment with defaults.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "process env")
	}
	return c, c.Validate()
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if version.Parse(c.DefaultAPIVersion) == "" {
		return errors.New("DEFAULT_API_VERSION must not be blank")
	}
	if c.VersionHeader == "" || c.VersionQuery == "" {
		return errors.New("API_VERSION_HEADER and API_VERSION_QUERY must not be empty")
	}
	if _, err := catalog.ParseLayout(c.StoreLayout); err != nil {
		return err
	}
	if c.AuditWorkers <= 0 || c.AuditBuffer <= 0 || c.AuditHistory <= 0 {
		return errors.New("AUDIT_WORKERS, AUDIT_BUFFER and AUDIT_HISTORY must be positive")
	}
	return nil
}
