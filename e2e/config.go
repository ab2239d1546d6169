package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_RELAY_ADDR points at a running relay; tests skip when empty.
	RelayAddr string `envconfig:"E2E_RELAY_ADDR"`
	// E2E_DEBUG_JSON dumps full relay request/response bodies.
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
