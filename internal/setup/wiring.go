package setup

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/aggregator"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/council"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/executor"
	"github.com/rs/zerolog"
)

var ErrMissingSecret = errors.New("missing required environment variable")

// DefaultAllowedOrigins are the local dev server and the hosted frontend.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://magi-frontend-dei3a527r-valonsides-projects.vercel.app",
}

type Config struct {
	Port            string
	CORSMode        middleware.CORSMode
	AllowedOrigins  []string
	LogLevel        string
	LogPretty       bool
	ProviderTimeout time.Duration
	StreamProvider  string
	RedisAddr       string
	RedisPassword   string
	RequestStream   string
	ResultStream    string
	ConsumerGroup   string
	ConsumerName    string
}

type Dependencies struct {
	Executor *executor.Executor
	Logger   *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "3001"),
		CORSMode:        middleware.CORSMode(getEnv("CORS_MODE", string(middleware.CORSAllowList))),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", DefaultAllowedOrigins),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", false),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 60*time.Second),
		StreamProvider:  getEnv("STREAM_PROVIDER", "redis"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RequestStream:   getEnv("MAGI_REQUEST_STREAM", "magi-requests"),
		ResultStream:    getEnv("MAGI_RESULT_STREAM", "magi-decisions"),
		ConsumerGroup:   getEnv("MAGI_GROUP", "magi-group"),
		ConsumerName:    getEnv("HOSTNAME", "magi-consumer"),
	}
}

func (c *Config) CORSPolicy() middleware.CORSPolicy {
	return middleware.CORSPolicy{
		Mode:           c.CORSMode,
		AllowedOrigins: c.AllowedOrigins,
	}
}

// LoadSecrets reads the API key of every council member. All missing variables
// are reported together.
func LoadSecrets(cfg *config.CouncilConfig) (map[string]string, error) {
	secrets := make(map[string]string, len(cfg.Council.Members))
	var missing []string

	for _, m := range cfg.Council.Members {
		value := os.Getenv(m.APIKeyEnv)
		if value == "" {
			missing = append(missing, m.APIKeyEnv)
			continue
		}
		secrets[m.APIKeyEnv] = value
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", "))
	}

	return secrets, nil
}

func Wire(cfg *Config, councilCfg *config.CouncilConfig, secrets map[string]string, logger *zerolog.Logger) (*Dependencies, error) {
	// Council members from YAML
	builder := council.NewBuilder(cfg.ProviderTimeout, logger)
	members, err := builder.BuildFromConfig(councilCfg, secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to build council from config: %w", err)
	}

	runner := council.NewRunner(members, logger)
	agg := aggregator.NewAggregator(logger)
	exec := executor.NewExecutor(runner, agg, logger)

	logger.Info().
		Int("members", len(members)).
		Dur("provider_timeout", cfg.ProviderTimeout).
		Msg("council wired")

	return &Dependencies{
		Executor: exec,
		Logger:   logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return append([]string(nil), defaultValue...)
	}

	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return append([]string(nil), defaultValue...)
	}

	return values
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		value = defaultValue
	}

	return value
}
