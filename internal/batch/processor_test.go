package batch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

type fakeDecider struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

// Execute approves content starting with "yes" and fails on "boom".
func (f *fakeDecider) Execute(ctx context.Context, requestID string, content string) (models.DecisionResult, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	time.Sleep(5 * time.Millisecond)

	switch {
	case content == "boom":
		return models.DecisionResult{}, errors.New("council run failed")
	case strings.HasPrefix(content, "yes"):
		return models.DecisionResult{FinalDecision: models.DecisionApproved}, nil
	default:
		return models.DecisionResult{FinalDecision: models.DecisionRejected}, nil
	}
}

func record(line int, id, content string) InputRecord {
	return InputRecord{LineNumber: line, Request: BatchRequest{ID: id, Content: content}}
}

func TestProcessor_PreservesInputOrder(t *testing.T) {
	var records []InputRecord
	for i := 0; i < 20; i++ {
		records = append(records, record(i+1, string(rune('a'+i)), "yes"))
	}

	processor := NewProcessor(&fakeDecider{}, 4, newTestLogger())
	out := processor.Process(context.Background(), records)

	if len(out) != len(records) {
		t.Fatalf("expected %d outputs, got %d", len(records), len(out))
	}
	for i := range records {
		if out[i].ID != records[i].Request.ID || out[i].LineNumber != records[i].LineNumber {
			t.Errorf("output %d out of order: %+v", i, out[i])
		}
	}
}

func TestProcessor_BoundsConcurrency(t *testing.T) {
	var records []InputRecord
	for i := 0; i < 30; i++ {
		records = append(records, record(i+1, "", "no"))
	}

	decider := &fakeDecider{}
	NewProcessor(decider, 3, newTestLogger()).Process(context.Background(), records)

	if peak := decider.peak.Load(); peak > 3 {
		t.Errorf("expected at most 3 concurrent decisions, got %d", peak)
	}
	if calls := decider.calls.Load(); calls != 30 {
		t.Errorf("expected 30 decisions, got %d", calls)
	}
}

func TestProcessor_Failures(t *testing.T) {
	records := []InputRecord{
		record(1, "ok", "yes please"),
		{LineNumber: 2, Error: errors.New("line 2: invalid character")},
		record(3, "empty", ""),
		record(4, "err", "boom"),
		record(5, "", "nope"),
	}

	decider := &fakeDecider{}
	out := NewProcessor(decider, 2, newTestLogger()).Process(context.Background(), records)

	if out[0].FinalDecision != models.DecisionApproved || out[0].Error != "" {
		t.Errorf("expected approved record, got %+v", out[0])
	}
	if out[1].Error == "" {
		t.Error("expected parse error to be reported")
	}
	if !strings.Contains(out[2].Error, ErrEmptyContent.Error()) {
		t.Errorf("expected empty content error, got %q", out[2].Error)
	}
	if out[3].Error == "" || out[3].FinalDecision != "" {
		t.Errorf("expected executor error, got %+v", out[3])
	}
	if out[4].ID == "" || out[4].FinalDecision != models.DecisionRejected {
		t.Errorf("expected generated id and rejection, got %+v", out[4])
	}
	if calls := decider.calls.Load(); calls != 3 {
		t.Errorf("expected only valid records decided, got %d calls", calls)
	}
}

func TestProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decider := &fakeDecider{}
	out := NewProcessor(decider, 2, newTestLogger()).Process(ctx, []InputRecord{record(1, "a", "yes")})

	if out[0].Error == "" {
		t.Error("expected cancellation error")
	}
	if decider.calls.Load() != 0 {
		t.Error("expected no decisions after cancellation")
	}
}
