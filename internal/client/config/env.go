package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig maps SPARKMATCH_* environment variables onto Config fields.
type envConfig struct {
	ServerEndpointAddr string        `env:"SPARKMATCH_SERVER_ADDR"`
	RequestTimeout     time.Duration `env:"SPARKMATCH_REQUEST_TIMEOUT"`
	DatabasePath       string        `env:"SPARKMATCH_DB_PATH"`
	UnreadPollInterval time.Duration `env:"SPARKMATCH_UNREAD_POLL_INTERVAL"`
}

// parseEnv overlays cfg with values found in the environment. Unset
// variables leave the corresponding field untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = ec.ServerEndpointAddr
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.UnreadPollInterval != 0 {
		cfg.UnreadPollInterval = ec.UnreadPollInterval
	}
}
