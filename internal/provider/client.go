package provider

import (
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
)

// Config is the immutable description of one OpenAI-compatible endpoint.
type Config struct {
	Name    string
	Vendor  string
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client talks to one chat-completions API. DeepSeek, Qwen and Spark all
// expose the OpenAI wire format, so a single implementation serves the council.
type Client struct {
	client openai.Client
	name   string
	vendor string
	model  string
	logger *zerolog.Logger
}

func NewClient(cfg Config, logger *zerolog.Logger) (*Client, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("provider name is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Vendor)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s base URL is required", cfg.Vendor)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s model ID is required", cfg.Vendor)
	}

	openaiClient := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)

	return &Client{
		client: openaiClient,
		name:   cfg.Name,
		vendor: cfg.Vendor,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Vendor() string {
	return c.vendor
}
