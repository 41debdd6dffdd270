package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Ranked is one candidate in a comparison, ordered by score.
type Ranked struct {
	Candidate string `json:"candidate"`
	Score     int    `json:"score"`
	Approved  bool   `json:"approved"`
	File      string `json:"file"`
}

// Comparison ranks stored candidates and cross-references their skills.
type Comparison struct {
	CreatedAt time.Time           `json:"created_at"`
	Keyword   string              `json:"keyword,omitempty"`
	Ranked    []Ranked            `json:"ranked"`
	Skills    map[string][]string `json:"skills"`
}

// Compare loads every indexed report, ranks candidates by score and builds a
// skill-to-candidates matrix. A non-empty keyword narrows the comparison to
// reports whose candidate name or job description mentions it. Unreadable
// report files are skipped with a warning.
func (s *Store) Compare(ctx context.Context, keyword string) (*Comparison, error) {
	entries, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no reports to compare")
	}

	cmp := &Comparison{
		CreatedAt: time.Now().UTC(),
		Keyword:   keyword,
		Skills:    make(map[string][]string),
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		rec, err := s.Load(entry.File)
		if err != nil {
			s.logger.Warn("skipping unreadable report",
				zap.String("file", entry.File),
				zap.Error(err),
			)
			continue
		}

		if !matchesKeyword(rec, keyword) {
			continue
		}

		// Only the latest report per candidate participates.
		key := strings.ToLower(rec.Candidate)
		if seen[key] {
			continue
		}
		seen[key] = true

		cmp.Ranked = append(cmp.Ranked, Ranked{
			Candidate: rec.Candidate,
			Score:     rec.Score,
			Approved:  rec.Approved,
			File:      entry.File,
		})

		if rec.Profile == nil {
			continue
		}
		for _, skill := range rec.Profile.Skills {
			cmp.Skills[skill] = append(cmp.Skills[skill], rec.Candidate)
		}
	}

	if len(cmp.Ranked) == 0 {
		return nil, fmt.Errorf("no readable reports to compare")
	}

	sort.SliceStable(cmp.Ranked, func(i, j int) bool {
		return cmp.Ranked[i].Score > cmp.Ranked[j].Score
	})

	return cmp, nil
}

func matchesKeyword(rec *Record, keyword string) bool {
	if keyword == "" {
		return true
	}
	keyword = strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(rec.Candidate), keyword) ||
		strings.Contains(strings.ToLower(rec.JobDescription), keyword)
}

// SaveComparison writes the comparison next to the reports and returns the
// file name.
func (s *Store) SaveComparison(cmp *Comparison) (string, error) {
	data, err := json.MarshalIndent(cmp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding comparison: %w", err)
	}

	name := fmt.Sprintf("comparison_%s.json", cmp.CreatedAt.Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing comparison: %w", err)
	}

	s.logger.Info("comparison saved",
		zap.Int("candidates", len(cmp.Ranked)),
		zap.String("file", name),
	)
	return name, nil
}
