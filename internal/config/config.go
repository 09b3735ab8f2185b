// Package config holds runtime settings for the client binaries. Values are
// resolved as defaults, then an optional JSON file, then command-line flags
// (applied by the CLI); later sources win.
package config

import "time"

type Config struct {
	// APIBaseURL is the root of the remote API, e.g. "https://api.devpal.app/".
	APIBaseURL string

	// DatabasePath is the SQLite cache file.
	DatabasePath string

	// RequestTimeout bounds each remote call.
	RequestTimeout time.Duration

	// ProbeTimeout bounds the pre-flight reachability dial.
	ProbeTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/"
	c.DatabasePath = "newbase.db"
	c.RequestTimeout = 30 * time.Second
	c.ProbeTimeout = 2 * time.Second
}

// Load builds a Config from defaults overlaid with the JSON file at path.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
