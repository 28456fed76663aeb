// Package config holds the settings of the goldmanager CLI client.
package config

import "time"

// Config holds runtime settings for the goldmanager CLI.
//
// Fields:
//   - ServerURL: base URL of the server's REST endpoint.
//   - RequestTimeout: upper bound for one HTTP round trip.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// Load applies defaults and then the JSON file at path, if path is not empty.
// Command-line flags are layered on top by the caller.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := loadJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
