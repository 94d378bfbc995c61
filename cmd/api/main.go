package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/api"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup/logger"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := setup.LoadConfig()

	// Setup logging
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Council members and their API keys
	councilCfg, err := config.LoadCouncilConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load council config")
	}

	secrets, err := setup.LoadSecrets(councilCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Missing provider credentials")
	}

	// Wire dependencies
	deps, err := setup.Wire(cfg, councilCfg, secrets, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	// API
	handler := api.NewHandler(deps.Executor, &log)
	container := api.NewContainer(handler, &log)

	// CORS
	corsHandler := middleware.CORS(cfg.CORSPolicy(), &log)

	// Server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           corsHandler(container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Closed once in-flight requests have drained.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	log.Info().
		Str("address", addr).
		Str("cors_mode", string(cfg.CORSMode)).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Starting MAGI relay API")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}

	<-shutdownDone
	log.Info().Msg("MAGI relay stopped")
}
