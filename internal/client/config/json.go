package config

import (
	"encoding/json"
	"os"

	"github.com/mkorotkov/sparkmatch/internal/flagx"
	"github.com/mkorotkov/sparkmatch/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero", so a partial file overrides
// only what it mentions. Durations accept either "10s" strings or integer
// nanoseconds via timex.Duration.
type jsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	DatabasePath       *string         `json:"database_path"`
	UnreadPollInterval *timex.Duration `json:"unread_poll_interval"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// No flag, no file, no overlay. Read or unmarshal errors panic; the config
// file is operator input and a broken one should stop startup.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.UnreadPollInterval != nil {
		cfg.UnreadPollInterval = jc.UnreadPollInterval.Duration
	}
}
