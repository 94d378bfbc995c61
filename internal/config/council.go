package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed council.yaml
var defaultCouncil []byte

// CouncilConfig lists the three providers that vote on every decision.
type CouncilConfig struct {
	Council Council `yaml:"council"`
}

type Council struct {
	Members []MemberConfig `yaml:"members"`
}

// MemberConfig describes one OpenAI-compatible chat-completions endpoint.
type MemberConfig struct {
	Name      string `yaml:"name"`
	Vendor    string `yaml:"vendor"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// LoadCouncilConfig reads MAGI_CONFIG_PATH when set, otherwise the embedded defaults.
func LoadCouncilConfig() (*CouncilConfig, error) {
	data := defaultCouncil

	if path := os.Getenv("MAGI_CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		data = raw
	}

	return ParseCouncilConfig(data)
}

func ParseCouncilConfig(data []byte) (*CouncilConfig, error) {
	var cfg CouncilConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *CouncilConfig) Validate() error {
	members := c.Council.Members
	if len(members) != len(models.MemberOrder) {
		return fmt.Errorf("council must have exactly %d members, got %d", len(models.MemberOrder), len(members))
	}

	for i, m := range members {
		if m.Name != models.MemberOrder[i] {
			return fmt.Errorf("member %d must be %s, got %q", i, models.MemberOrder[i], m.Name)
		}
		if m.Vendor == "" {
			return fmt.Errorf("member %s missing vendor", m.Name)
		}
		if m.BaseURL == "" {
			return fmt.Errorf("member %s missing base_url", m.Name)
		}
		if m.Model == "" {
			return fmt.Errorf("member %s missing model", m.Name)
		}
		if m.APIKeyEnv == "" {
			return fmt.Errorf("member %s missing api_key_env", m.Name)
		}
	}

	return nil
}
