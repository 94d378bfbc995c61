package provider

import (
	"context"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

// Provider is one voting member of the council.
// Decide never fails: transport and parse problems come back as a deny verdict.
type Provider interface {
	Name() string
	Decide(ctx context.Context, content string) models.Verdict
}
