package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mberezhnyi/resume-screener/internal/util"
)

const (
	defaultModel   = "gemini-2.5-flash"
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Config holds the settings for the Gemini API backend.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	MaxRetries  int
}

// Client wraps the Google GenAI client to provide simple prompt-based interactions.
type Client struct {
	client      *genai.Client
	modelName   string
	temperature float64
	maxTokens   int
	maxRetries  int
	logger      *zap.Logger
}

// NewClient creates a generator configured for the Gemini API backend.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		client:      client,
		modelName:   model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		logger:      log,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual
// response. Failed calls are retried with exponential backoff.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

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
			c.logger.Warn("retrying gemini request",
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

	return "", fmt.Errorf("gemini request failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	var config *genai.GenerateContentConfig
	if c.temperature > 0 || c.maxTokens > 0 {
		config = &genai.GenerateContentConfig{}
		if c.temperature > 0 {
			config.Temperature = genai.Ptr(float32(c.temperature))
		}
		if c.maxTokens > 0 {
			config.MaxOutputTokens = int32(c.maxTokens)
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
