package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/stream"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/stream/redis"
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

	councilCfg, err := config.LoadCouncilConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load council config")
	}

	secrets, err := setup.LoadSecrets(councilCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Missing provider credentials")
	}

	deps, err := setup.Wire(cfg, councilCfg, secrets, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	// Redis stream
	streamCfg := stream.NewStreamConfig(
		cfg.StreamProvider,
		redis.NewRedisStreamConfig(
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RequestStream,
			cfg.ResultStream,
			cfg.ConsumerGroup,
			cfg.ConsumerName,
		),
	)

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Executor, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	// Setup consumer
	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	// Start returns after the message in flight has been decided and ACKed.
	<-consumerDone

	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop consumer")
	}

	log.Info().Msg("MAGI stream consumer stopped")
}
