package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	red "github.com/povarna/generative-ai-agents/magi-relay/internal/redis"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/stream/redis"
	"github.com/spf13/cobra"
)

var (
	contentFlag string
	streamFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "producer",
		Short: "Publish a decision request to the MAGI request stream",
		Long:  "producer appends one decision request to the Redis stream read by the MAGI stream consumer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&contentFlag, "content", "d", "", "content the council should decide on")
	rootCmd.Flags().StringVar(&streamFlag, "stream", "", "request stream name (default $MAGI_REQUEST_STREAM or magi-requests)")
	_ = rootCmd.MarkFlagRequired("content")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg := setup.LoadConfig()
	log := logger.New(cfg.LogLevel, true)

	stream := streamFlag
	if stream == "" {
		stream = cfg.RequestStream
	}

	client, err := red.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3, &log)
	if err != nil {
		return err
	}
	defer client.Close()

	requestID, err := redis.NewProducer(client, stream, &log).Publish(ctx, contentFlag)
	if err != nil {
		return err
	}

	fmt.Println(requestID)
	return nil
}
