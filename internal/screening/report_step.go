package screening

import (
	"context"
	"fmt"
	"strings"
)

type reportStep struct {
	enabled bool
	reason  string
}

// NewReport creates the step that renders the final markdown report from all
// previous analyses.
func NewReport() Step {
	return &reportStep{enabled: true}
}

func (s *reportStep) Name() string { return StepReport }

func (s *reportStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *reportStep) IsEnabled() bool { return s.enabled }

func (s *reportStep) Validate(deps Deps) error {
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *reportStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	if strings.TrimSpace(c.Evaluation) == "" {
		return Outcome{}, fmt.Errorf("match evaluation is missing, run the match step first")
	}

	prompt := renderPrompt(reportPrompt, map[string]string{
		"CANDIDATE":       c.candidate(),
		"REQUIREMENTS":    orUnavailable(c.Requirements),
		"SKILLS_ANALYSIS": orUnavailable(c.SkillsAnalysis),
		"RESEARCH":        orUnavailable(c.Research),
		"EVALUATION":      c.Evaluation,
	})

	raw, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("generating report: %w", err)
	}

	c.Report = strings.TrimSpace(raw)
	if c.Report == "" {
		return Outcome{}, fmt.Errorf("model returned an empty report")
	}

	return Outcome{Detail: fmt.Sprintf("%d chars", len(c.Report))}, nil
}
