package screening

import "strings"

// candidate returns the candidate description used for prompting. The
// model-written summary from the extract step is preferred over the
// heuristic profile summary.
func (c *Case) candidate() string {
	if strings.TrimSpace(c.CandidateSummary) != "" {
		return c.CandidateSummary
	}
	return c.Profile.Summary()
}

func orUnavailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not available)"
	}
	return s
}
