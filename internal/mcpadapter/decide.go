package mcpadapter

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

const ToolDecide = "decide"

var ErrContentRequired = errors.New("content is required")

// Decider runs one decision; *executor.Executor satisfies it.
type Decider interface {
	Execute(ctx context.Context, requestID string, content string) (models.DecisionResult, error)
}

// DecideInput is the MCP tool input schema (matches the HTTP body).
type DecideInput struct {
	Content string `json:"content" jsonschema:"text the council should agree or deny"`
}

// DecideOutput mirrors the HTTP response with flat member entries.
type DecideOutput struct {
	FinalDecision string          `json:"finalDecision" jsonschema:"APPROVED or REJECTED"`
	Results       []MemberVerdict `json:"results" jsonschema:"one entry per council member, in fixed order"`
}

type MemberVerdict struct {
	Model       string `json:"model"`
	Decision    int    `json:"decision" jsonschema:"1 agree, 0 deny"`
	Explanation string `json:"explanation"`
}

// NewDecideHandler returns a tool handler that uses the given executor.
// Pass the returned function to mcp.AddTool.
func NewDecideHandler(decider Decider) func(context.Context, *mcp.CallToolRequest, DecideInput) (*mcp.CallToolResult, DecideOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DecideInput) (*mcp.CallToolResult, DecideOutput, error) {
		if input.Content == "" {
			return nil, DecideOutput{}, ErrContentRequired
		}

		result, err := decider.Execute(ctx, uuid.NewString(), input.Content)
		if err != nil {
			return nil, DecideOutput{}, err
		}

		return nil, toOutput(result), nil
	}
}

// NewServer builds the MCP server exposing the decide tool.
func NewServer(decider Decider, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "magi-relay",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolDecide,
		Description: "Ask the three MAGI council members to agree or deny the content and return the 2-of-3 majority decision",
	}, NewDecideHandler(decider))

	return server
}

func toOutput(result models.DecisionResult) DecideOutput {
	out := DecideOutput{
		FinalDecision: string(result.FinalDecision),
		Results:       make([]MemberVerdict, len(result.Results)),
	}
	for i, r := range result.Results {
		out.Results[i] = MemberVerdict{
			Model:       r.Model,
			Decision:    r.Decision,
			Explanation: r.Explanation,
		}
	}
	return out
}
