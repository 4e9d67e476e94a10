// Package config assembles runtime settings for the Sparkmatch client from
// defaults, an optional JSON file, environment variables, and command-line
// flags, in that order of precedence (later sources win).
package config

import "time"

// Config holds runtime settings for the Sparkmatch terminal client.
type Config struct {
	// ServerEndpointAddr is the base URL of the backend HTTP API,
	// including the path prefix (e.g. "http://localhost:8080/api").
	ServerEndpointAddr string

	// RequestTimeout bounds every single API request.
	RequestTimeout time.Duration

	// DatabasePath is the SQLite file holding the persisted session.
	DatabasePath string

	// UnreadPollInterval is how often the client refreshes the unread
	// message counter while authenticated.
	UnreadPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "sparkmatch.db"
	c.UnreadPollInterval = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given), the environment, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
