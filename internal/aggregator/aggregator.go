package aggregator

import (
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/rs/zerolog"
)

type Aggregator struct {
	logger *zerolog.Logger
}

func NewAggregator(logger *zerolog.Logger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// Aggregate applies the majority rule: APPROVED when more than half of the
// verdicts (2 of 3) agree. Results keep the order they were given in.
func (a *Aggregator) Aggregate(verdicts []models.NamedVerdict) models.DecisionResult {
	result := models.DecisionResult{
		FinalDecision: models.DecisionRejected,
		Results:       verdicts,
	}

	if len(verdicts) == 0 {
		return result
	}

	agreeVotes := 0
	for _, v := range verdicts {
		if v.Agrees() {
			agreeVotes++
		}
	}

	quorum := len(verdicts)/2 + 1
	if agreeVotes >= quorum {
		result.FinalDecision = models.DecisionApproved
	}

	a.logger.
		Info().
		Int("agree_votes", agreeVotes).
		Int("quorum", quorum).
		Str("final_decision", string(result.FinalDecision)).
		Msg("aggregation complete")
	return result
}
