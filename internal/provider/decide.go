package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/prompt"
)

// Decide sends the rendered prompt as a single system message and parses the
// first choice as a verdict.
func (c *Client) Decide(ctx context.Context, content string) models.Verdict {
	now := time.Now()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.Build(content)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	output, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logCallError(err)
		return c.fallback()
	}

	if len(output.Choices) == 0 {
		c.logger.Error().
			Str("model", c.name).
			Str("vendor", c.vendor).
			Msg("no choices in response")
		return c.fallback()
	}

	reply := output.Choices[0].Message.Content
	verdict, err := parseVerdict(reply)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("model", c.name).
			Str("vendor", c.vendor).
			Str("content", reply).
			Msg("failed to deserialize verdict")
		return c.fallback()
	}

	if errors.Is(verdict.err, errInvalidDecision) {
		c.logger.Warn().
			Str("model", c.name).
			Str("vendor", c.vendor).
			Str("decision", verdict.rawDecision).
			Msg("decision is not 0 or 1, counting as deny")
	}

	c.logger.Info().
		Str("model", c.name).
		Int("decision", verdict.Decision).
		Dur("duration", time.Since(now)).
		Msg("provider voted")

	return verdict.Verdict
}

func (c *Client) fallback() models.Verdict {
	return models.Verdict{
		Decision:    models.Deny,
		Explanation: fmt.Sprintf("%s model invocation failed.", c.vendor),
	}
}

func (c *Client) logCallError(err error) {
	event := c.logger.Error().
		Err(err).
		Str("model", c.name).
		Str("vendor", c.vendor)

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		event = event.
			Int("status", apiErr.StatusCode).
			Str("body", apiErr.RawJSON())
	}

	event.Msg("provider call failed")
}
