package main

import "time"

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL,default=gemini-2.5-flash-preview-09-2025"`
	GeminiBaseURL   string        `env:"GEMINI_BASE_URL"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=30s"`
	Persona         string        `env:"PERSONA"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
}

// defaultAllowedOrigins is used when ALLOWED_ORIGINS is not set.
// The env value is a comma-separated list.
var defaultAllowedOrigins = []string{
	"https://vitamedllm.web.app",
	"https://vitamedllm.firebaseapp.com",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}
