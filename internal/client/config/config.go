// Package config loads the ScentShop CLI configuration from defaults, an
// optional JSON file and command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the ScentShop CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataFile: path of the local SQLite file used for token persistence.
//   - RollbackOnConflict: undo the optimistic cart increment when the server
//     rejects an add with a stock conflict.
type Config struct {
	ServerBaseURL      string
	RequestTimeout     time.Duration
	DataFile           string
	RollbackOnConflict bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DataFile = "scentshop.db"
	c.RollbackOnConflict = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
