package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

type fakeDecider struct {
	result  models.DecisionResult
	err     error
	calls   int
	content string
}

func (f *fakeDecider) Execute(ctx context.Context, requestID string, content string) (models.DecisionResult, error) {
	f.calls++
	f.content = content
	return f.result, f.err
}

func rejected() models.DecisionResult {
	return models.DecisionResult{
		FinalDecision: models.DecisionRejected,
		Results: []models.NamedVerdict{
			{Model: models.Melchior, Verdict: models.Verdict{Decision: 0, Explanation: "DeepSeek model invocation failed."}},
			{Model: models.Balthasar, Verdict: models.Verdict{Decision: 1, Explanation: "fine"}},
			{Model: models.Casper, Verdict: models.Verdict{Decision: 0, Explanation: "no"}},
		},
	}
}

func TestDecideHandler(t *testing.T) {
	decider := &fakeDecider{result: rejected()}
	handler := NewDecideHandler(decider)

	_, out, err := handler(context.Background(), nil, DecideInput{Content: "Ship it?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decider.content != "Ship it?" {
		t.Errorf("expected content forwarded, got %q", decider.content)
	}
	if out.FinalDecision != "REJECTED" {
		t.Errorf("expected REJECTED, got %s", out.FinalDecision)
	}
	if len(out.Results) != 3 || out.Results[0].Model != models.Melchior || out.Results[1].Decision != 1 {
		t.Errorf("unexpected results: %+v", out.Results)
	}
}

func TestDecideHandler_EmptyContent(t *testing.T) {
	decider := &fakeDecider{result: rejected()}
	handler := NewDecideHandler(decider)

	_, _, err := handler(context.Background(), nil, DecideInput{})
	if !errors.Is(err, ErrContentRequired) {
		t.Errorf("expected ErrContentRequired, got %v", err)
	}
	if decider.calls != 0 {
		t.Errorf("expected no decision, got %d calls", decider.calls)
	}
}

func TestDecideHandler_ExecutorError(t *testing.T) {
	handler := NewDecideHandler(&fakeDecider{err: errors.New("council run failed")})

	if _, _, err := handler(context.Background(), nil, DecideInput{Content: "x"}); err == nil {
		t.Error("expected executor error to surface")
	}
}

func TestServer_CallTool(t *testing.T) {
	ctx := context.Background()
	server := NewServer(&fakeDecider{result: rejected()}, "test")

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolDecide,
		Arguments: map[string]any{"content": "Ship it?"},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("expected content in tool result")
	}

	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}

	var out DecideOutput
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("failed to decode tool output: %v", err)
	}
	if out.FinalDecision != "REJECTED" || len(out.Results) != 3 {
		t.Errorf("unexpected output: %+v", out)
	}
}
