package setup

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/magi-relay/internal/config"
	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func defaultCouncil(t *testing.T) *config.CouncilConfig {
	t.Helper()
	t.Setenv("MAGI_CONFIG_PATH", "")

	cfg, err := config.LoadCouncilConfig()
	if err != nil {
		t.Fatalf("failed to load council config: %v", err)
	}
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CORS_MODE", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_PRETTY", "PROVIDER_TIMEOUT", "MAGI_REQUEST_STREAM", "MAGI_RESULT_STREAM", "MAGI_GROUP"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "3001" {
		t.Errorf("expected port 3001, got %s", cfg.Port)
	}
	if cfg.CORSMode != middleware.CORSAllowList {
		t.Errorf("expected allowlist mode, got %s", cfg.CORSMode)
	}
	wantOrigins := []string{"http://localhost:5173", "https://magi-frontend-dei3a527r-valonsides-projects.vercel.app"}
	if len(cfg.AllowedOrigins) != len(wantOrigins) {
		t.Fatalf("unexpected default origins: %v", cfg.AllowedOrigins)
	}
	for i, want := range wantOrigins {
		if cfg.AllowedOrigins[i] != want {
			t.Errorf("origin %d: expected %s, got %s", i, want, cfg.AllowedOrigins[i])
		}
	}
	if cfg.ProviderTimeout != 60*time.Second {
		t.Errorf("expected 60s provider timeout, got %s", cfg.ProviderTimeout)
	}
	if cfg.LogPretty {
		t.Error("expected JSON logs by default")
	}
	if cfg.RequestStream != "magi-requests" || cfg.ResultStream != "magi-decisions" || cfg.ConsumerGroup != "magi-group" {
		t.Errorf("unexpected stream defaults: %s %s %s", cfg.RequestStream, cfg.ResultStream, cfg.ConsumerGroup)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_MODE", "permissive")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example,,")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("PROVIDER_TIMEOUT", "5s")

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.CORSPolicy().Mode != middleware.CORSPermissive {
		t.Errorf("expected permissive mode, got %s", cfg.CORSMode)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if !cfg.LogPretty {
		t.Error("expected pretty logs")
	}
	if cfg.ProviderTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.ProviderTimeout)
	}
}

func TestLoadConfig_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")

	if got := LoadConfig().ProviderTimeout; got != 60*time.Second {
		t.Errorf("expected default timeout, got %s", got)
	}
}

func TestLoadSecrets(t *testing.T) {
	councilCfg := defaultCouncil(t)
	t.Setenv("DEEPSEEK_API_KEY", "ds")
	t.Setenv("QWEN_API_KEY", "qw")
	t.Setenv("SPARK_API_PASSWORD", "sp")

	secrets, err := LoadSecrets(councilCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secrets["DEEPSEEK_API_KEY"] != "ds" || secrets["QWEN_API_KEY"] != "qw" || secrets["SPARK_API_PASSWORD"] != "sp" {
		t.Errorf("unexpected secrets: %v", secrets)
	}
}

func TestLoadSecrets_MissingNamesVariable(t *testing.T) {
	councilCfg := defaultCouncil(t)
	t.Setenv("DEEPSEEK_API_KEY", "ds")
	t.Setenv("QWEN_API_KEY", "")
	t.Setenv("SPARK_API_PASSWORD", "sp")

	_, err := LoadSecrets(councilCfg)
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if !strings.Contains(err.Error(), "QWEN_API_KEY") {
		t.Errorf("expected error to name QWEN_API_KEY, got %v", err)
	}
	if strings.Contains(err.Error(), "DEEPSEEK_API_KEY") {
		t.Errorf("expected only missing variables in error, got %v", err)
	}
}

func TestWire(t *testing.T) {
	councilCfg := defaultCouncil(t)
	cfg := &Config{ProviderTimeout: time.Second}
	secrets := map[string]string{
		"DEEPSEEK_API_KEY":   "ds",
		"QWEN_API_KEY":       "qw",
		"SPARK_API_PASSWORD": "sp",
	}

	deps, err := Wire(cfg, councilCfg, secrets, newTestLogger())
	if err != nil {
		t.Fatalf("Wire failed: %v", err)
	}
	if deps.Executor == nil {
		t.Error("expected an executor")
	}
}

func TestWire_EmptySecretFails(t *testing.T) {
	councilCfg := defaultCouncil(t)
	cfg := &Config{ProviderTimeout: time.Second}

	_, err := Wire(cfg, councilCfg, map[string]string{}, newTestLogger())
	if err == nil {
		t.Fatal("expected error for missing API keys")
	}
}
