package main

import "time"

// Config defines the client-side environment variables.
type Config struct {
	RelayAddr      string        `env:"VITAMED_RELAY_ADDR,default=http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=60s"`
	LogLevel       string        `env:"LOG_LEVEL,default=warn"`
	SessionKey     string        `env:"SESSION_SIGNING_KEY,default=dev-session-signing-key"`
	SessionTTL     time.Duration `env:"SESSION_TTL,default=24h"`
}
