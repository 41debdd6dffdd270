package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type researchStep struct {
	enabled bool
	reason  string
}

// NewResearch creates the step that gathers public information about the
// candidate and summarizes it, separating verified facts from possible
// matches. Search failures do not abort the run: the evaluation proceeds
// without findings.
func NewResearch() Step {
	return &researchStep{enabled: true}
}

func (s *researchStep) Name() string { return StepResearch }

func (s *researchStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *researchStep) IsEnabled() bool { return s.enabled }

func (s *researchStep) Validate(deps Deps) error {
	if deps.Researcher == nil {
		return fmt.Errorf("researcher is required when the research step is enabled")
	}
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *researchStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	findings, err := deps.Researcher.Research(ctx, c.Profile)
	if err != nil {
		deps.Logger.Warn("candidate research failed, continuing without findings",
			zap.Error(err),
		)
		c.Research = ""
		return Outcome{Detail: "failed, skipped"}, nil
	}

	if strings.TrimSpace(findings) == "" {
		c.Research = ""
		return Outcome{Detail: "no results"}, nil
	}

	prompt := renderPrompt(researchPrompt, map[string]string{
		"CANDIDATE": c.candidate(),
		"RESULTS":   findings,
	})

	summary, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
	if err != nil {
		// The raw snippets are still usable for the later steps.
		deps.Logger.Warn("summarizing research failed, keeping raw findings",
			zap.Error(err),
		)
		c.Research = findings
		return Outcome{Detail: fmt.Sprintf("raw findings, %d chars", len(findings))}, nil
	}

	c.Research = strings.TrimSpace(summary)
	return Outcome{Detail: fmt.Sprintf("%d chars", len(c.Research))}, nil
}
