package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/devpal/newbase/internal/timex"
)

// jsonConfig is the DTO for the JSON file. timex.Duration lets intervals be
// written either as strings like "30s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	DatabasePath   string          `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ProbeTimeout   *timex.Duration `json:"probe_timeout"`
}

// parseJSON overlays cfg with values from the JSON file at path. Absent
// fields keep their current values.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	return nil
}
