package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/ai/gemini"
	"github.com/mberezhnyi/resume-screener/internal/ai/openai"
	"github.com/mberezhnyi/resume-screener/internal/trace"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// DefaultFactory builds generators for the supported providers. Ollama is
// served through the OpenAI-compatible client pointed at the local server.
func DefaultFactory(traced bool) Factory {
	return func(ctx context.Context, cfg ProviderConfig, log *zap.Logger) (Generator, error) {
		httpClient := &http.Client{Timeout: 5 * time.Minute}
		if traced {
			httpClient = trace.HTTPClient(httpClient)
		}

		switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
		case ProviderOpenAI:
			if strings.TrimSpace(cfg.APIKey) == "" {
				return nil, fmt.Errorf("openai api key is required")
			}
			return openai.NewClient(openai.Config{
				APIKey:      cfg.APIKey,
				BaseURL:     cfg.BaseURL,
				Model:       cfg.Model,
				Temperature: cfg.Temperature,
				MaxTokens:   cfg.MaxTokens,
				MaxRetries:  cfg.MaxRetries,
				HTTPClient:  httpClient,
			}, log)

		case ProviderOllama:
			baseURL := strings.TrimSpace(cfg.BaseURL)
			if baseURL == "" {
				baseURL = defaultOllamaBaseURL
			}
			return openai.NewClient(openai.Config{
				BaseURL:     baseURL,
				Model:       cfg.Model,
				Temperature: cfg.Temperature,
				MaxTokens:   cfg.MaxTokens,
				MaxRetries:  cfg.MaxRetries,
				HTTPClient:  httpClient,
			}, log)

		case ProviderGemini:
			return gemini.NewClient(ctx, gemini.Config{
				APIKey:      cfg.APIKey,
				Model:       cfg.Model,
				Temperature: cfg.Temperature,
				MaxTokens:   cfg.MaxTokens,
				MaxRetries:  cfg.MaxRetries,
			}, log)

		default:
			return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
		}
	}
}
