// Package reports persists screening results. Every run produces a JSON
// report file; a sqlite index next to the files keeps listing and ranking
// cheap.
package reports

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mberezhnyi/resume-screener/internal/resume"
	"github.com/mberezhnyi/resume-screener/internal/screening"
)

//go:embed schema.sql
var schema string

const indexFile = "index.db"

// Record is the full screening result written to a report file.
type Record struct {
	Candidate      string          `json:"candidate"`
	Score          int             `json:"score"`
	Approved       bool            `json:"approved"`
	CreatedAt      time.Time       `json:"created_at"`
	Profile        *resume.Profile `json:"profile"`
	JobDescription string          `json:"job_description,omitempty"`
	Requirements   string          `json:"requirements,omitempty"`
	SkillsAnalysis string          `json:"skills_analysis,omitempty"`
	Research       string          `json:"research,omitempty"`
	Evaluation     string          `json:"evaluation,omitempty"`
	Report         string          `json:"report"`
	FeedbackRounds int             `json:"feedback_rounds,omitempty"`
	FeedbackNotes  []string        `json:"feedback_notes,omitempty"`
}

// Entry is one row of the report index.
type Entry struct {
	ID        int64
	Candidate string
	Score     int
	Approved  bool
	File      string
	CreatedAt time.Time
}

// Store manages report files and their sqlite index in one directory.
type Store struct {
	dir    string
	db     *sql.DB
	logger *zap.Logger
}

// Open prepares the reports directory and its index database.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reports directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("opening report index: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating report index: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{dir: dir, db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// FromCase builds a report record from a finished screening case. The raw
// resume text is dropped, only structured fields are persisted.
func FromCase(c *screening.Case) *Record {
	return &Record{
		Candidate:      c.Profile.Name,
		Score:          c.Score,
		Approved:       c.Approved,
		CreatedAt:      time.Now().UTC(),
		Profile:        c.Profile.WithoutFullText(),
		JobDescription: c.JobDescription,
		Requirements:   c.Requirements,
		SkillsAnalysis: c.SkillsAnalysis,
		Research:       c.Research,
		Evaluation:     c.Evaluation,
		Report:         c.Report,
		FeedbackRounds: c.FeedbackRounds,
		FeedbackNotes:  c.FeedbackNotes,
	}
}

var unsafeNameRe = regexp.MustCompile(`[^a-z0-9]+`)

func fileName(candidate string, at time.Time) string {
	slug := unsafeNameRe.ReplaceAllString(strings.ToLower(candidate), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "candidate"
	}
	return fmt.Sprintf("%s_%s.json", slug, at.Format("20060102_150405"))
}

// uniqueFileName appends a counter when a report with the same candidate and
// timestamp already exists, so an earlier file is never overwritten.
func (s *Store) uniqueFileName(candidate string, at time.Time) string {
	name := fileName(candidate, at)
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d.json", strings.TrimSuffix(fileName(candidate, at), ".json"), n)
	}
}

// Save writes the record to a JSON file and indexes it. The file name is
// returned.
func (s *Store) Save(ctx context.Context, rec *Record) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	name := s.uniqueFileName(rec.Candidate, rec.CreatedAt)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (candidate, score, approved, file, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Candidate, rec.Score, rec.Approved, name, rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("indexing report: %w", err)
	}

	s.logger.Info("report saved",
		zap.String("candidate", rec.Candidate),
		zap.Int("score", rec.Score),
		zap.String("file", name),
	)

	return name, nil
}

// List returns indexed reports, newest first. A non-empty keyword narrows the
// list to candidates whose name contains it.
func (s *Store) List(ctx context.Context, keyword string) ([]Entry, error) {
	query := `SELECT id, candidate, score, approved, file, created_at FROM reports`
	args := []any{}
	if keyword != "" {
		query += ` WHERE candidate LIKE ?`
		args = append(args, "%"+keyword+"%")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Candidate, &e.Score, &e.Approved, &e.File, &createdAt); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Load reads a report file by name from the store directory.
func (s *Store) Load(name string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", name, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", name, err)
	}
	return &rec, nil
}
