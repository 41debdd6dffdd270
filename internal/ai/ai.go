package ai

import (
	"context"
	"strings"
)

// Provider names understood by the factory.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Generator produces a completion for a single prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Invoker resolves a pipeline step to its configured backend and runs the
// prompt through it. Steps depend on this interface only.
type Invoker interface {
	Generate(ctx context.Context, step, prompt string) (string, error)
}

// ProviderConfig is the resolved backend selection for one pipeline step.
type ProviderConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	MaxRetries  int
}

// Merge overlays non-zero fields of the override onto the receiver and
// returns the result. The receiver is not modified.
func (c ProviderConfig) Merge(override ProviderConfig) ProviderConfig {
	merged := c
	if v := strings.TrimSpace(override.Provider); v != "" {
		merged.Provider = v
	}
	if v := strings.TrimSpace(override.Model); v != "" {
		merged.Model = v
	}
	if v := strings.TrimSpace(override.APIKey); v != "" {
		merged.APIKey = v
	}
	if v := strings.TrimSpace(override.BaseURL); v != "" {
		merged.BaseURL = v
	}
	if override.Temperature != 0 {
		merged.Temperature = override.Temperature
	}
	if override.MaxTokens != 0 {
		merged.MaxTokens = override.MaxTokens
	}
	if override.MaxRetries != 0 {
		merged.MaxRetries = override.MaxRetries
	}
	return merged
}

func (c ProviderConfig) key() string {
	return strings.Join([]string{c.Provider, c.Model, c.BaseURL}, "|")
}
