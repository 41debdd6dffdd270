package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type matchStep struct {
	enabled bool
	reason  string
}

// NewMatch creates the step that produces the final evaluation and the
// numeric match score.
func NewMatch() Step {
	return &matchStep{enabled: true}
}

func (s *matchStep) Name() string { return StepMatch }

func (s *matchStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *matchStep) IsEnabled() bool { return s.enabled }

func (s *matchStep) Validate(deps Deps) error {
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *matchStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	if strings.TrimSpace(c.Requirements) == "" {
		return Outcome{}, fmt.Errorf("requirements analysis is missing, run the requirements step first")
	}

	prompt := renderPrompt(matchPrompt, map[string]string{
		"CANDIDATE":       c.candidate(),
		"REQUIREMENTS":    c.Requirements,
		"SKILLS_ANALYSIS": orUnavailable(c.SkillsAnalysis),
		"RESEARCH":        orUnavailable(c.Research),
	})

	raw, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluating match: %w", err)
	}

	c.Evaluation = strings.TrimSpace(raw)

	score, ok := ParseScore(c.Evaluation)
	if !ok {
		deps.Logger.Warn("match score not found in evaluation, recording zero")
	}
	c.Score = score
	deps.Logger.Debug("match evaluated", zap.Int("score", score))

	return Outcome{Detail: fmt.Sprintf("score %d/100", score)}, nil
}
