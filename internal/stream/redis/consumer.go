package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const messageDecisionFailed = "decision failed"

// Decider runs one decision; *executor.Executor satisfies it.
type Decider interface {
	Execute(ctx context.Context, requestID string, content string) (models.DecisionResult, error)
}

// streamClient is the subset of *redis.Client the consumer and producer use.
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type Consumer struct {
	client       streamClient
	stream       string
	resultStream string
	groupID      string
	consumerName string
	decider      Decider
	logger       *zerolog.Logger
}

func NewConsumer(client streamClient, cfg *RedisStreamConfig, decider Decider, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.RequestStream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		decider:      decider,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("result_stream", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		// A message already read is decided, published and ACKed even if
		// shutdown starts meanwhile.
		msgCtx := context.WithoutCancel(ctx)
		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(msgCtx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	return nil
}

// process always ACKs: a request that cannot be decided is not retried.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	defer c.ack(ctx, msg.ID)

	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	request, err := decodeMessage(msg.ID, msg.Values)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Skipping undecodable message")
		return
	}

	if request.Content == "" {
		c.logger.Warn().Str("id", msg.ID).Str("requestID", request.RequestID).Msg("Skipping message without content")
		return
	}

	result, err := c.decider.Execute(ctx, request.RequestID, request.Content)
	if err != nil {
		c.logger.Error().Err(err).Str("requestID", request.RequestID).Msg("Decision failed")
		c.publish(ctx, map[string]any{
			fieldRequestID: request.RequestID,
			fieldError:     messageDecisionFailed,
		})
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.Error().Err(err).Str("requestID", request.RequestID).Msg("Failed to encode result")
		return
	}

	c.publish(ctx, map[string]any{
		fieldRequestID: request.RequestID,
		fieldPayload:   string(payload),
	})

	c.logger.Info().
		Str("id", msg.ID).
		Str("requestID", request.RequestID).
		Str("final_decision", string(result.FinalDecision)).
		Msg("Decision published")
}

func (c *Consumer) publish(ctx context.Context, values map[string]any) {
	err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: values,
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("stream", c.resultStream).Msg("Failed to publish result")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
