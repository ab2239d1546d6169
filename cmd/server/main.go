package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"vitamed/infrastructure/gemini"
	"vitamed/infrastructure/http/server"
	"vitamed/observability"
	"vitamed/safety"
	"vitamed/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle, so all
// defers execute before the process exits and errors surface in one place.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if config.GeminiAPIKey == "" {
		// Boot anyway: the relay answers its health probe and returns a
		// generic server error on /generate until the key is provided.
		log.Warn("GEMINI_API_KEY is not set")
	}

	origins := defaultAllowedOrigins
	if config.AllowedOrigins != "" {
		origins = strings.Split(config.AllowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	// 2. Wiring
	monitoring := observability.NewMonitoringManager(log)
	screener, err := safety.NewScreener(safety.DefaultEmergencyTerms)
	if err != nil {
		return fmt.Errorf("safety screener failed to build: %w", err)
	}

	generator := gemini.NewClient(log, config.GeminiAPIKey, config.GeminiModel,
		config.GeminiBaseURL, config.UpstreamTimeout)
	generateService := services.NewGenerateService(log, generator, &screener, config.Persona)
	relay := server.NewServer(log, generateService, monitoring)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. HTTP Server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           relay.Routes(origins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting relay server", "address", address, "model", config.GeminiModel)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("relay server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Relay server stopped")
	return nil
}
