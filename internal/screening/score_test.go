package screening

import "testing"

func TestParseScore(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		score int
		ok    bool
	}{
		{"dedicated line", "analysis...\nTotal Match Score: 87", 87, true},
		{"lowercase", "total match score: 42", 42, true},
		{"with equals", "Total Match Score = 73", 73, true},
		{"out of hundred", "The candidate scores 64/100 overall.", 64, true},
		{"loose score", "Score: 55", 55, true},
		{"loose match", "match: 70", 70, true},
		{"clamped high", "Total Match Score: 250", 100, true},
		{"prefers dedicated line", "Score: 10\nTotal Match Score: 90", 90, true},
		{"no score", "great candidate, hire immediately", 0, false},
		{"placeholder", "Total Match Score: XX", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := ParseScore(tc.text)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if score != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, score)
			}
		})
	}
}
