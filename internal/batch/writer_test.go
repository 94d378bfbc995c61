package batch

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatJSONL, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	records := []OutputRecord{
		{ID: "1", LineNumber: 1, FinalDecision: models.DecisionApproved},
		{ID: "2", LineNumber: 2, FinalDecision: models.DecisionRejected},
		{ID: "3", LineNumber: 3, Error: "line 3: content is required"},
	}
	for _, r := range records {
		if err := writer.Write(r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}

	var last map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if last["id"] != "3" || last["error"] == nil {
		t.Errorf("unexpected last line: %v", last)
	}
	if _, ok := last["finalDecision"]; ok {
		t.Errorf("expected finalDecision omitted for failed record, got %v", last)
	}

	summary := writer.Summary()
	if summary != (Summary{Total: 3, Approved: 1, Rejected: 1, Failed: 1}) {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestWriter_SummaryFormat(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatSummary, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	_ = writer.Write(OutputRecord{ID: "1", FinalDecision: models.DecisionApproved})
	_ = writer.Write(OutputRecord{ID: "2", FinalDecision: models.DecisionApproved})
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("expected a single summary object, got %q", buf.String())
	}
	if summary.Total != 2 || summary.Approved != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "csv", newTestLogger()); err == nil {
		t.Error("expected error for unsupported format")
	}
}
