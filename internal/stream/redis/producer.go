package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Producer appends decision requests to the request stream.
type Producer struct {
	client streamClient
	stream string
	logger *zerolog.Logger
}

func NewProducer(client streamClient, stream string, logger *zerolog.Logger) *Producer {
	return &Producer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish returns the request id the consumer will echo on the result stream.
func (p *Producer) Publish(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("content is required")
	}

	msg := decisionMessage{
		RequestID:       uuid.NewString(),
		DecisionRequest: models.DecisionRequest{Content: content},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{fieldPayload: string(payload)},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", p.stream, err)
	}

	p.logger.Info().
		Str("stream", p.stream).
		Str("id", id).
		Str("requestID", msg.RequestID).
		Msg("Request published")

	return msg.RequestID, nil
}
