package executor

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . CouncilRunner,Aggregator

import (
	"context"
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/rs/zerolog"
)

// CouncilRunner fans the content out to every provider and waits for all verdicts
type CouncilRunner interface {
	Run(ctx context.Context, content string) ([]models.NamedVerdict, error)
}

// Aggregator folds the verdicts into the final decision
type Aggregator interface {
	Aggregate(verdicts []models.NamedVerdict) models.DecisionResult
}

var (
	ErrEmptyContent      = errors.New("content is required")
	ErrIncompleteCouncil = errors.New("council returned an unexpected number of verdicts")
)

type Executor struct {
	council    CouncilRunner
	aggregator Aggregator
	logger     *zerolog.Logger
}

func NewExecutor(
	council CouncilRunner,
	aggregator Aggregator,
	logger *zerolog.Logger,
) *Executor {
	return &Executor{
		council:    council,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Execute runs one decision. Provider failures are already deny verdicts, so an
// error here means the aggregation path itself is broken.
func (e *Executor) Execute(ctx context.Context, requestID string, content string) (models.DecisionResult, error) {
	if content == "" {
		return models.DecisionResult{}, ErrEmptyContent
	}

	e.logger.Info().Str("requestID", requestID).Msg("starting decision")

	verdicts, err := e.council.Run(ctx, content)
	if err != nil {
		return models.DecisionResult{}, fmt.Errorf("council run failed: %w", err)
	}

	if len(verdicts) != len(models.MemberOrder) {
		return models.DecisionResult{}, fmt.Errorf("%w: got %d, want %d", ErrIncompleteCouncil, len(verdicts), len(models.MemberOrder))
	}

	result := e.aggregator.Aggregate(verdicts)

	e.logger.
		Info().
		Str("requestID", requestID).
		Str("final_decision", string(result.FinalDecision)).
		Msg("decision complete")
	return result, nil
}
