package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	cfg := setup.LoadConfig()

	// stdout carries the MCP protocol, so logs always go to stderr.
	log := logger.New(cfg.LogLevel, true)

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	councilCfg, err := config.LoadCouncilConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load council config")
		os.Exit(1)
	}

	secrets, err := setup.LoadSecrets(councilCfg)
	if err != nil {
		log.Error().Err(err).Msg("Missing provider credentials")
		os.Exit(1)
	}

	// Wire dependencies
	deps, err := setup.Wire(cfg, councilCfg, secrets, &log)
	if err != nil {
		log.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	// Create MCP Server
	server := mcpadapter.NewServer(deps.Executor, "1.0.0")

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			log.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		log.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}
