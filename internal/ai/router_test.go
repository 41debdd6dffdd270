package ai

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	model    string
	response string
	err      error
	calls    int
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return s.model }

func stubFactory(gens map[string]*stubGenerator) Factory {
	return func(_ context.Context, cfg ProviderConfig, _ *zap.Logger) (Generator, error) {
		gen, ok := gens[cfg.Provider]
		if !ok {
			return nil, errors.New("unknown provider")
		}
		return gen, nil
	}
}

func TestRouterUsesStepOverride(t *testing.T) {
	gens := map[string]*stubGenerator{
		"openai": {model: "gpt-4o-mini", response: "default"},
		"gemini": {model: "gemini-2.5-flash", response: "override"},
	}

	router := NewRouter(
		ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"},
		nil,
		map[string]ProviderConfig{"match": {Provider: "gemini", Model: "gemini-2.5-flash"}},
		stubFactory(gens),
		zap.NewNop(),
	)

	out, err := router.Generate(context.Background(), "match", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "override" {
		t.Fatalf("expected override response, got %q", out)
	}
	if gens["openai"].calls != 0 {
		t.Fatalf("default backend should not be called")
	}

	out, err = router.Generate(context.Background(), "report", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "default" {
		t.Fatalf("expected default response, got %q", out)
	}
}

func TestRouterFallsBack(t *testing.T) {
	gens := map[string]*stubGenerator{
		"ollama": {model: "llama3", err: errors.New("connection refused")},
		"openai": {model: "gpt-4o-mini", response: "rescued"},
	}

	router := NewRouter(
		ProviderConfig{Provider: "ollama", Model: "llama3"},
		&ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"},
		nil,
		stubFactory(gens),
		zap.NewNop(),
	)

	out, err := router.Generate(context.Background(), "skills", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "rescued" {
		t.Fatalf("expected fallback response, got %q", out)
	}
	if gens["ollama"].calls != 1 {
		t.Fatalf("expected primary backend to be tried once, got %d", gens["ollama"].calls)
	}
}

func TestRouterNoFallbackPropagatesError(t *testing.T) {
	gens := map[string]*stubGenerator{
		"ollama": {model: "llama3", err: errors.New("connection refused")},
	}

	router := NewRouter(
		ProviderConfig{Provider: "ollama", Model: "llama3"},
		nil,
		nil,
		stubFactory(gens),
		zap.NewNop(),
	)

	if _, err := router.Generate(context.Background(), "skills", "prompt"); err == nil {
		t.Fatalf("expected error when no fallback is configured")
	}
}

func TestRouterSkipsIdenticalFallback(t *testing.T) {
	gens := map[string]*stubGenerator{
		"openai": {model: "gpt-4o-mini", err: errors.New("rate limited")},
	}

	router := NewRouter(
		ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"},
		&ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"},
		nil,
		stubFactory(gens),
		zap.NewNop(),
	)

	if _, err := router.Generate(context.Background(), "skills", "prompt"); err == nil {
		t.Fatalf("expected error when fallback equals primary")
	}
	if gens["openai"].calls != 1 {
		t.Fatalf("identical fallback must not be retried, got %d calls", gens["openai"].calls)
	}
}

func TestRouterSkipsFallbackWithInheritedModel(t *testing.T) {
	gens := map[string]*stubGenerator{
		"openai": {model: "gpt-4o-mini", err: errors.New("rate limited")},
	}

	// The fallback names only the provider and inherits the default model,
	// resolving to the same backend as the primary.
	router := NewRouter(
		ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"},
		&ProviderConfig{Provider: "openai"},
		nil,
		stubFactory(gens),
		zap.NewNop(),
	)

	if _, err := router.Generate(context.Background(), "skills", "prompt"); err == nil {
		t.Fatalf("expected error when fallback resolves to primary")
	}
	if gens["openai"].calls != 1 {
		t.Fatalf("resolved-identical fallback must not be retried, got %d calls", gens["openai"].calls)
	}
}

func TestRouterCachesGenerators(t *testing.T) {
	built := 0
	factory := func(_ context.Context, cfg ProviderConfig, _ *zap.Logger) (Generator, error) {
		built++
		return &stubGenerator{model: cfg.Model, response: "ok"}, nil
	}

	router := NewRouter(
		ProviderConfig{Provider: "openai", Model: "gpt-4o-mini"},
		nil,
		nil,
		factory,
		zap.NewNop(),
	)

	for i := 0; i < 3; i++ {
		if _, err := router.Generate(context.Background(), "report", "prompt"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if built != 1 {
		t.Fatalf("expected a single generator instance, got %d", built)
	}
}

func TestProviderConfigMerge(t *testing.T) {
	base := ProviderConfig{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   2000,
		MaxRetries:  3,
	}

	merged := base.Merge(ProviderConfig{Provider: "gemini", Model: "gemini-2.5-flash"})
	if merged.Provider != "gemini" || merged.Model != "gemini-2.5-flash" {
		t.Fatalf("override not applied: %+v", merged)
	}
	if merged.Temperature != 0.3 || merged.MaxTokens != 2000 || merged.MaxRetries != 3 {
		t.Fatalf("defaults lost during merge: %+v", merged)
	}

	if got := base.Merge(ProviderConfig{}); got != base {
		t.Fatalf("empty override must keep base config: %+v", got)
	}
}
