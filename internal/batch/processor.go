package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/rs/zerolog"
)

var ErrEmptyContent = errors.New("content is required")

// Decider runs one decision; *executor.Executor satisfies it.
type Decider interface {
	Execute(ctx context.Context, requestID string, content string) (models.DecisionResult, error)
}

type OutputRecord struct {
	ID            string                `json:"id"`
	LineNumber    int                   `json:"line"`
	FinalDecision models.FinalDecision  `json:"finalDecision,omitempty"`
	Results       []models.NamedVerdict `json:"results,omitempty"`
	Error         string                `json:"error,omitempty"`
}

type Processor struct {
	decider Decider
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(decider Decider, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		decider: decider,
		workers: workers,
		logger:  logger,
	}
}

// Process decides every record on a bounded pool of workers. The output slice
// is in input order regardless of completion order.
func (p *Processor) Process(ctx context.Context, records []InputRecord) []OutputRecord {
	out := make([]OutputRecord, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = p.processOne(ctx, records[i])
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) OutputRecord {
	out := OutputRecord{
		ID:         record.Request.ID,
		LineNumber: record.LineNumber,
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}

	switch {
	case record.Error != nil:
		out.Error = record.Error.Error()
		return out
	case record.Request.Content == "":
		out.Error = fmt.Sprintf("line %d: %s", record.LineNumber, ErrEmptyContent)
		return out
	case ctx.Err() != nil:
		out.Error = ctx.Err().Error()
		return out
	}

	result, err := p.decider.Execute(ctx, out.ID, record.Request.Content)
	if err != nil {
		p.logger.Error().Err(err).Str("id", out.ID).Int("line", record.LineNumber).Msg("Decision failed")
		out.Error = err.Error()
		return out
	}

	out.FinalDecision = result.FinalDecision
	out.Results = result.Results
	return out
}
