package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/logger"
)

// Factory builds a Generator from a resolved provider config.
type Factory func(ctx context.Context, cfg ProviderConfig, log *zap.Logger) (Generator, error)

// Router maps pipeline step names to generators. Each step resolves to the
// default provider config overlaid with its per-step override. When the
// primary backend fails, the configured fallback backend is tried once.
type Router struct {
	defaults ProviderConfig
	fallback *ProviderConfig
	steps    map[string]ProviderConfig
	factory  Factory
	logger   *zap.Logger

	mu    sync.Mutex
	cache map[string]Generator
}

// NewRouter creates a router. The steps map holds per-step overrides keyed by
// step name; fallback may be nil when no fallback backend is configured.
func NewRouter(defaults ProviderConfig, fallback *ProviderConfig, steps map[string]ProviderConfig, factory Factory, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		defaults: defaults,
		fallback: fallback,
		steps:    steps,
		factory:  factory,
		logger:   log,
		cache:    make(map[string]Generator),
	}
}

// ConfigForStep returns the effective provider config for a step.
func (r *Router) ConfigForStep(step string) ProviderConfig {
	cfg := r.defaults
	if override, ok := r.steps[step]; ok {
		cfg = cfg.Merge(override)
	}
	return cfg
}

// Generate runs the prompt through the step's primary backend, falling back
// to the fallback backend on error.
func (r *Router) Generate(ctx context.Context, step, prompt string) (string, error) {
	primary := r.ConfigForStep(step)

	out, primaryErr := r.generateWith(ctx, step, primary, prompt)
	if primaryErr == nil {
		return out, nil
	}

	if r.fallback == nil {
		return "", primaryErr
	}

	// Compare against the resolved fallback: a fallback that only names the
	// default provider inherits the default model and must not re-run the
	// same backend.
	resolved := r.defaults.Merge(*r.fallback)
	if sameBackend(primary, resolved) {
		return "", primaryErr
	}

	r.logger.Warn("primary backend failed, trying fallback",
		zap.String(logger.FieldStep, step),
		zap.String(logger.FieldProvider, primary.Provider),
		zap.String(logger.FieldModel, primary.Model),
		zap.Error(primaryErr),
	)

	out, fallbackErr := r.generateWith(ctx, step, resolved, prompt)
	if fallbackErr != nil {
		return "", fmt.Errorf("fallback failed: %w (primary: %v)", fallbackErr, primaryErr)
	}
	return out, nil
}

func (r *Router) generateWith(ctx context.Context, step string, cfg ProviderConfig, prompt string) (string, error) {
	gen, err := r.generator(ctx, cfg)
	if err != nil {
		return "", err
	}

	r.logger.Debug("invoking model",
		zap.String(logger.FieldStep, step),
		zap.String(logger.FieldProvider, cfg.Provider),
		zap.String(logger.FieldModel, gen.Model()),
		zap.Int("prompt_length", len(prompt)),
	)

	return gen.GenerateContent(ctx, prompt)
}

func (r *Router) generator(ctx context.Context, cfg ProviderConfig) (Generator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen, ok := r.cache[cfg.key()]; ok {
		return gen, nil
	}

	if r.factory == nil {
		return nil, fmt.Errorf("no generator factory configured")
	}

	gen, err := r.factory(ctx, cfg, logger.WithCommonFields(r.logger, cfg.Provider, cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("building %s generator: %w", cfg.Provider, err)
	}

	r.cache[cfg.key()] = gen
	return gen, nil
}

func sameBackend(a, b ProviderConfig) bool {
	return strings.EqualFold(a.Provider, b.Provider) && a.Model == b.Model
}
