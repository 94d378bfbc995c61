package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/batch"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup/logger"
	"github.com/rs/zerolog"
)

func main() {
	startTime := time.Now()

	input := flag.String("input", "", "Input JSONL file path, or '-' for stdin")
	output := flag.String("output", "", "Output file path (default stdout)")
	format := flag.String("format", batch.FormatJSONL, "Output format. Supported formats: 'jsonl', 'summary'")
	workers := flag.Int("workers", 5, "Concurrent decision workers")
	dryRun := flag.Bool("dry-run", false, "Validate input without calling providers")

	flag.Parse()

	envErr := godotenv.Load()

	cfg := setup.LoadConfig()

	// stdout may carry the results, so logs go to stderr.
	log := logger.New(cfg.LogLevel, true)
	if envErr != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}
	if *format != batch.FormatJSONL && *format != batch.FormatSummary {
		log.Fatal().Str("format", *format).Msg("Invalid format. Supported: jsonl, summary")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Open input file
	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	// Read records
	var records []batch.InputRecord
	for record := range batch.NewReader(inputFile, &log).ReadAll(ctx) {
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Msg("Input file parsed")

	if *dryRun {
		dryRunAndExit(&log, records)
	}

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
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Open output file
	var outputFile io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	writer, err := batch.NewWriter(outputFile, *format, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	// Process with worker pool
	processor := batch.NewProcessor(deps.Executor, *workers, &log)
	for _, result := range processor.Process(ctx, records) {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Str("id", result.ID).Msg("Failed to write result")
		}
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to flush output")
	}

	summary := writer.Summary()
	log.Info().
		Int("total", summary.Total).
		Int("approved", summary.Approved).
		Int("rejected", summary.Rejected).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(startTime)).
		Msg("Batch processing complete")
}

func dryRunAndExit(log *zerolog.Logger, records []batch.InputRecord) {
	errorCount := 0
	for _, record := range records {
		switch {
		case record.Error != nil:
			log.Error().Int("line", record.LineNumber).Err(record.Error).Msg("Validation error")
			errorCount++
		case record.Request.Content == "":
			log.Error().Int("line", record.LineNumber).Msg("Validation error: content is required")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Validation failed")
	}

	log.Info().Msg("Validation successful")
	os.Exit(0)
}
