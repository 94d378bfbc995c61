package council

import (
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/provider"
	"github.com/rs/zerolog"
)

// Builder turns the council configuration into provider clients.
type Builder struct {
	timeout time.Duration
	logger  *zerolog.Logger
}

func NewBuilder(timeout time.Duration, logger *zerolog.Logger) *Builder {
	return &Builder{
		timeout: timeout,
		logger:  logger,
	}
}

// BuildFromConfig creates one client per member. secrets maps each member's
// api_key_env to its value.
func (b *Builder) BuildFromConfig(cfg *config.CouncilConfig, secrets map[string]string) ([]provider.Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("council config is nil")
	}

	var members []provider.Provider

	for _, memberCfg := range cfg.Council.Members {
		client, err := provider.NewClient(provider.Config{
			Name:    memberCfg.Name,
			Vendor:  memberCfg.Vendor,
			BaseURL: memberCfg.BaseURL,
			Model:   memberCfg.Model,
			APIKey:  secrets[memberCfg.APIKeyEnv],
			Timeout: b.timeout,
		}, b.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create member %s: %w", memberCfg.Name, err)
		}

		members = append(members, client)

		b.logger.Info().
			Str("model", memberCfg.Name).
			Str("vendor", memberCfg.Vendor).
			Str("model_id", memberCfg.Model).
			Str("base_url", memberCfg.BaseURL).
			Msg("council member created")
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("no council members found in config")
	}

	return members, nil
}
