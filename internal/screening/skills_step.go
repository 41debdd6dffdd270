package screening

import (
	"context"
	"fmt"
	"strings"
)

type skillsStep struct {
	enabled bool
	reason  string
}

// NewSkills creates the step that analyzes the candidate's skills against the
// extracted job requirements.
func NewSkills() Step {
	return &skillsStep{enabled: true}
}

func (s *skillsStep) Name() string { return StepSkills }

func (s *skillsStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *skillsStep) IsEnabled() bool { return s.enabled }

func (s *skillsStep) Validate(deps Deps) error {
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *skillsStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	if strings.TrimSpace(c.Requirements) == "" {
		return Outcome{}, fmt.Errorf("requirements analysis is missing, run the requirements step first")
	}

	prompt := renderPrompt(skillsPrompt, map[string]string{
		"CANDIDATE":    c.candidate(),
		"REQUIREMENTS": c.Requirements,
	})

	raw, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("analyzing skills: %w", err)
	}

	c.SkillsAnalysis = strings.TrimSpace(raw)
	return Outcome{Detail: fmt.Sprintf("%d chars", len(c.SkillsAnalysis))}, nil
}
