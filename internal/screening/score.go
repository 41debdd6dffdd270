package screening

import (
	"regexp"
	"strconv"
)

var (
	totalScoreRe = regexp.MustCompile(`(?i)total match score\s*[:=]?\s*(\d{1,3})`)
	outOf100Re   = regexp.MustCompile(`\b(\d{1,3})\s*/\s*100\b`)
	looseScoreRe = regexp.MustCompile(`(?i)\b(?:score|match)\s*[:=]\s*(\d{1,3})\b`)
)

// ParseScore extracts the match score from model output. The dedicated
// "Total Match Score: NN" line wins; looser patterns are fallbacks for models
// that ignore the format instruction.
func ParseScore(text string) (int, bool) {
	for _, re := range []*regexp.Regexp{totalScoreRe, outOf100Re, looseScoreRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			score, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if score < 0 {
				score = 0
			}
			if score > 100 {
				score = 100
			}
			return score, true
		}
	}
	return 0, false
}
