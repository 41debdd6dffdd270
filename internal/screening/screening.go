// Package screening runs the sequential evaluation of a candidate against a
// job description. Each step reads from and writes to a shared Case.
package screening

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/ai"
	"github.com/mberezhnyi/resume-screener/internal/logger"
	"github.com/mberezhnyi/resume-screener/internal/resume"
	"github.com/mberezhnyi/resume-screener/internal/trace"
)

// Step names are stable identifiers, also used for per-step model overrides.
const (
	StepExtract      = "extract"
	StepRequirements = "requirements"
	StepSkills       = "skills"
	StepResearch     = "research"
	StepMatch        = "match"
	StepReport       = "report"
	StepFeedback     = "feedback"
)

// Step represents a single screening step applied to a case.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Run(ctx context.Context, deps Deps, c *Case) (Outcome, error)
}

// Researcher gathers public information about the candidate.
type Researcher interface {
	Research(ctx context.Context, profile *resume.Profile) (string, error)
}

// FeedbackFunc collects reviewer feedback on a drafted report. It returns the
// reviewer notes and whether the report was approved as-is.
type FeedbackFunc func(report string) (notes string, approved bool, err error)

// Deps aggregates dependencies shared across all screening steps.
type Deps struct {
	Invoker    ai.Invoker
	Researcher Researcher
	Feedback   FeedbackFunc
	Logger     *zap.Logger
}

// Case is the shared state a screening run accumulates step by step.
type Case struct {
	Profile        *resume.Profile
	JobDescription string

	CandidateSummary string
	Requirements     string
	SkillsAnalysis   string
	Research         string
	Evaluation       string
	Score            int
	Report           string

	FeedbackRounds int
	FeedbackNotes  []string
	Approved       bool
}

// Outcome describes the result of executing one step.
type Outcome struct {
	Detail string
}

// DisableByName marks a step with the provided name as disabled while keeping
// it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// DefaultSteps returns the full screening sequence in execution order.
func DefaultSteps() []Step {
	return []Step{
		NewExtract(),
		NewRequirements(),
		NewSkills(),
		NewResearch(),
		NewMatch(),
		NewReport(),
		NewFeedback(),
	}
}

// Run executes the supplied steps sequentially. All enabled steps are
// validated upfront so a misconfigured late step fails before any model call.
func Run(ctx context.Context, deps Deps, steps []Step, c *Case) error {
	if c.Profile == nil {
		return fmt.Errorf("screening: case has no candidate profile")
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
		deps.Logger = log
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(deps); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			log.Info("step disabled", zap.String(logger.FieldStep, step.Name()))
			continue
		}

		started := time.Now()
		stepCtx, span := trace.Tracer().Start(ctx, "screening/"+step.Name())
		outcome, err := step.Run(stepCtx, deps, c)
		span.End()
		if err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Info("screening step",
			zap.String(logger.FieldStep, step.Name()),
			zap.String("detail", outcome.Detail),
			zap.Duration("took", time.Since(started)),
		)
	}

	return nil
}
