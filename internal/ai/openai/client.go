package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/util"
)

const (
	defaultModel   = "gpt-4o-mini"
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Config holds the settings for an OpenAI-compatible chat backend. A custom
// BaseURL points the client at any server speaking the OpenAI API, which is
// how locally hosted Ollama models are reached.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	MaxRetries  int
	HTTPClient  *http.Client
}

// Client wraps the OpenAI chat completions API as a prompt generator.
type Client struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
	maxRetries  int
	logger      *zap.Logger
}

// NewClient creates a generator for the OpenAI API or any compatible server.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" && strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("either an api key or a base url is required")
	}

	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	if log == nil {
		log = zap.NewNop()
	}

	client := openai.NewClient(opts...)

	return &Client{
		client:      &client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		logger:      log,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the
// completion text. Failed calls are retried with exponential backoff.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	attempts := c.maxRetries
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := util.Backoff(attempt-1, initialBackoff, maxBackoff)
			c.logger.Warn("retrying chat completion",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(lastErr),
			)
			if err := util.WaitFor(ctx, wait); err != nil {
				return "", err
			}
		}

		out, err := c.generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(c.maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("api returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("api returned empty content")
	}

	return content, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
