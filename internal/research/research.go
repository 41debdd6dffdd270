// Package research gathers public information about a candidate through web
// search. Findings are returned as plain text ready for prompting.
package research

import (
	"context"
	"fmt"
	"strings"

	bravesearch "github.com/cnosuke/go-brave-search"
	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/resume"
)

const (
	defaultMaxResults = 3
	maxResultsCap     = 20
)

// Result is a single web search hit.
type Result struct {
	Title       string
	URL         string
	Description string
}

// Searcher runs a single web search query.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// Config for the research client.
type Config struct {
	APIKey     string
	MaxResults int
}

// Client queries public sources for candidate background.
type Client struct {
	searcher   Searcher
	maxResults int
	logger     *zap.Logger
}

// NewClient builds a research client backed by Brave web search.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("research: api key is required")
	}

	brave, err := bravesearch.NewClient(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("research: creating search client: %w", err)
	}

	return newClient(&braveSearcher{client: brave}, cfg.MaxResults, logger), nil
}

func newClient(s Searcher, maxResults int, logger *zap.Logger) *Client {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{searcher: s, maxResults: maxResults, logger: logger}
}

// Queries derives the search queries for a candidate. The latest employer,
// when present, narrows the name search.
func Queries(profile *resume.Profile) []string {
	name := strings.TrimSpace(profile.Name)
	if name == "" || name == "Unknown" {
		return nil
	}

	queries := []string{}
	if len(profile.Experience) > 0 && profile.Experience[0].Company != "" && profile.Experience[0].Company != "N/A" {
		queries = append(queries, fmt.Sprintf("%q %s", name, profile.Experience[0].Company))
	} else {
		queries = append(queries, fmt.Sprintf("%q", name))
	}
	queries = append(queries,
		fmt.Sprintf("%q github", name),
		fmt.Sprintf("%q linkedin", name),
	)
	return queries
}

// Research runs all candidate queries and merges the results into one text
// block. Failed queries are logged and skipped; an error is returned only
// when every query fails.
func (c *Client) Research(ctx context.Context, profile *resume.Profile) (string, error) {
	queries := Queries(profile)
	if len(queries) == 0 {
		return "", fmt.Errorf("research: candidate name is unknown, nothing to search for")
	}

	var b strings.Builder
	var failures int
	for _, query := range queries {
		results, err := c.searcher.Search(ctx, query, c.maxResults)
		if err != nil {
			failures++
			c.logger.Warn("web search failed", zap.String("query", query), zap.Error(err))
			continue
		}

		c.logger.Debug("web search done", zap.String("query", query), zap.Int("results", len(results)))

		if len(results) == 0 {
			continue
		}

		fmt.Fprintf(&b, "Search: %s\n", query)
		for _, r := range results {
			fmt.Fprintf(&b, "- %s\n  %s\n  %s\n", r.Title, r.URL, r.Description)
		}
		b.WriteString("\n")
	}

	if failures == len(queries) {
		return "", fmt.Errorf("research: all %d queries failed", failures)
	}

	findings := strings.TrimSpace(b.String())
	if findings == "" {
		return "No public information found.", nil
	}
	return findings, nil
}

type braveSearcher struct {
	client *bravesearch.Client
}

func (b *braveSearcher) Search(ctx context.Context, query string, count int) ([]Result, error) {
	resp, err := b.client.WebSearch(ctx, query, &bravesearch.WebSearchParams{Count: count})
	if err != nil {
		return nil, err
	}

	var out []Result
	for _, r := range resp.GetWebResults() {
		out = append(out, Result{Title: r.Title, URL: r.URL, Description: r.Description})
	}
	return out, nil
}
