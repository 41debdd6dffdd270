package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// maxFeedbackRounds caps how many times the report is revised before the run
// ends without approval.
const maxFeedbackRounds = 3

type feedbackStep struct {
	enabled bool
	reason  string
}

// NewFeedback creates the step that collects reviewer feedback on the report
// and revises it until approved. Without a feedback handler the report is
// approved as-is.
func NewFeedback() Step {
	return &feedbackStep{enabled: true}
}

func (s *feedbackStep) Name() string { return StepFeedback }

func (s *feedbackStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *feedbackStep) IsEnabled() bool { return s.enabled }

func (s *feedbackStep) Validate(deps Deps) error {
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *feedbackStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	if strings.TrimSpace(c.Report) == "" {
		return Outcome{}, fmt.Errorf("report is missing, run the report step first")
	}

	if deps.Feedback == nil {
		c.Approved = true
		return Outcome{Detail: "auto-approved"}, nil
	}

	for round := 0; round < maxFeedbackRounds; round++ {
		notes, approved, err := deps.Feedback(c.Report)
		if err != nil {
			return Outcome{}, fmt.Errorf("collecting feedback: %w", err)
		}

		if approved {
			c.Approved = true
			return Outcome{Detail: fmt.Sprintf("approved after %d revisions", c.FeedbackRounds)}, nil
		}

		if strings.TrimSpace(notes) == "" {
			// Rejected with no notes: there is nothing to revise against.
			return Outcome{Detail: "rejected without notes"}, nil
		}

		prompt := renderPrompt(revisePrompt, map[string]string{
			"REPORT":   c.Report,
			"FEEDBACK": notes,
		})

		raw, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
		if err != nil {
			return Outcome{}, fmt.Errorf("revising report: %w", err)
		}

		c.Report = strings.TrimSpace(raw)
		c.FeedbackRounds++
		c.FeedbackNotes = append(c.FeedbackNotes, notes)

		if score, ok := ParseScore(c.Report); ok && score != c.Score {
			deps.Logger.Info("score adjusted after feedback",
				zap.Int("previous", c.Score),
				zap.Int("score", score),
			)
			c.Score = score
		}
	}

	return Outcome{Detail: fmt.Sprintf("not approved after %d revisions", c.FeedbackRounds)}, nil
}
