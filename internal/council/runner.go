package council

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/provider"
	"github.com/rs/zerolog"
)

type Runner struct {
	Members []provider.Provider
	logger  *zerolog.Logger
}

func NewRunner(members []provider.Provider, logger *zerolog.Logger) *Runner {
	return &Runner{
		Members: members,
		logger:  logger,
	}
}

// Run asks every member concurrently and waits for all of them. Each verdict is
// stored at its member's index, so the output order never depends on latency.
// A member that panics is reported as an error rather than a vote.
func (r *Runner) Run(ctx context.Context, content string) ([]models.NamedVerdict, error) {
	now := time.Now()

	verdicts := make([]models.NamedVerdict, len(r.Members))
	failures := make([]error, len(r.Members))
	var wg sync.WaitGroup

	for i, member := range r.Members {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					failures[i] = fmt.Errorf("member %s panicked: %v", p.Name(), rec)
				}
			}()

			verdicts[i] = models.NamedVerdict{
				Model:   p.Name(),
				Verdict: p.Decide(ctx, content),
			}
		}(i, member)
	}

	wg.Wait()

	if err := errors.Join(failures...); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("members", len(verdicts)).
		Dur("duration", time.Since(now)).
		Msg("council settled")

	return verdicts, nil
}
