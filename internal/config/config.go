// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// DBPath overrides the default local database location.
	DBPath string `env:"RA_DB"`

	// RemoteURL is the base URL of a snapshot mirror server. Empty disables
	// syncing; the app is fully local-first either way.
	RemoteURL string `env:"RA_REMOTE_URL"`
	// SyncKey names the shared household document on the mirror. Defaults to
	// this installation's device id when unset.
	SyncKey      string        `env:"RA_SYNC_KEY"`
	SyncDebounce time.Duration `env:"RA_SYNC_DEBOUNCE" envDefault:"2s"`

	// ListenAddr is where `ra serve` binds the mirror server.
	ListenAddr string `env:"RA_LISTEN" envDefault:":8787"`

	// Coordinates and API base for the prayer-time lookup.
	Latitude      float64 `env:"RA_LAT"`
	Longitude     float64 `env:"RA_LON"`
	PrayerAPIBase string  `env:"RA_PRAYER_API" envDefault:"https://api.aladhan.com"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
