package screening

import (
	"context"
	"fmt"
	"strings"
)

type requirementsStep struct {
	enabled bool
	reason  string
}

// NewRequirements creates the step that turns the job description into a
// categorized, prioritized requirements list.
func NewRequirements() Step {
	return &requirementsStep{enabled: true}
}

func (s *requirementsStep) Name() string { return StepRequirements }

func (s *requirementsStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *requirementsStep) IsEnabled() bool { return s.enabled }

func (s *requirementsStep) Validate(deps Deps) error {
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *requirementsStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	if strings.TrimSpace(c.JobDescription) == "" {
		return Outcome{}, fmt.Errorf("job description is empty")
	}

	prompt := renderPrompt(requirementsPrompt, map[string]string{
		"JOB_DESCRIPTION": c.JobDescription,
	})

	raw, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("analyzing job description: %w", err)
	}

	c.Requirements = strings.TrimSpace(raw)
	if c.Requirements == "" {
		return Outcome{}, fmt.Errorf("model returned an empty requirements analysis")
	}

	return Outcome{Detail: fmt.Sprintf("%d chars", len(c.Requirements))}, nil
}
