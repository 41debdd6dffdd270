package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/ai"
	"github.com/mberezhnyi/resume-screener/internal/resume"
)

type extractStep struct {
	enabled bool
	reason  string
}

// NewExtract creates the step that asks the model for a structured view of
// the raw resume text. The result supplements the heuristic parse: missing
// name and skills are filled in and a professional summary is produced.
func NewExtract() Step {
	return &extractStep{enabled: true}
}

func (s *extractStep) Name() string { return StepExtract }

func (s *extractStep) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *extractStep) IsEnabled() bool { return s.enabled }

func (s *extractStep) Validate(deps Deps) error {
	if deps.Invoker == nil {
		return fmt.Errorf("model invoker is required")
	}
	return nil
}

func (s *extractStep) Run(ctx context.Context, deps Deps, c *Case) (Outcome, error) {
	prompt := renderPrompt(extractPrompt, map[string]string{
		"RESUME_TEXT": c.Profile.FullText,
	})

	raw, err := deps.Invoker.Generate(ctx, s.Name(), prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("generating extraction: %w", err)
	}

	parsed, err := ai.DecodeLooseJSON(ai.ExtractJSON(raw))
	if err != nil {
		// The heuristic parse still stands, so a malformed response only
		// costs us the model summary.
		deps.Logger.Warn("extraction response is not valid JSON, keeping heuristic profile",
			zap.Error(err),
		)
		c.CandidateSummary = c.Profile.Summary()
		return Outcome{Detail: "model response unusable"}, nil
	}

	if name := strings.TrimSpace(ai.CoerceString(parsed["name"])); name != "" && c.Profile.Name == "Unknown" {
		c.Profile.Name = name
	}
	added := mergeSkills(c.Profile, ai.CoerceStringSlice(parsed["skills"]))

	summary := strings.TrimSpace(ai.CoerceString(parsed["summary"]))
	if summary != "" {
		c.CandidateSummary = c.Profile.Summary() + "\nSummary: " + summary
	} else {
		c.CandidateSummary = c.Profile.Summary()
	}

	return Outcome{Detail: fmt.Sprintf("skills added: %d", added)}, nil
}

// mergeSkills appends skills the heuristic pass missed, case-insensitively.
func mergeSkills(profile *resume.Profile, skills []string) int {
	known := make(map[string]bool, len(profile.Skills))
	for _, skill := range profile.Skills {
		known[strings.ToLower(skill)] = true
	}

	added := 0
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || known[strings.ToLower(skill)] {
			continue
		}
		profile.Skills = append(profile.Skills, skill)
		known[strings.ToLower(skill)] = true
		added++
	}
	return added
}
