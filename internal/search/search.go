// Package search defines the web-search collaborator contract. Results are
// a finite ordered sequence of snippets; the workflow never re-queries or
// paginates.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Result is one ranked search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher queries an external search collaborator. Implementations must
// honor ctx cancellation; callers guard every call with a deadline.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string, limit int) ([]Result, error)

func (f SearcherFunc) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	return f(ctx, query, limit)
}

// WithTimeout wraps a Searcher so every call carries a deadline.
func WithTimeout(s Searcher, d time.Duration) Searcher {
	return SearcherFunc(func(ctx context.Context, query string, limit int) ([]Result, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return s.Search(ctx, query, limit)
	})
}

// FormatContext renders results as a bulleted context block for inclusion
// in a responder prompt. Empty input yields the empty string.
func FormatContext(results []Result) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Mock is a scriptable Searcher for tests. Queries are recorded.
type Mock struct {
	Results []Result
	Err     error

	Queries []string
}

func (m *Mock) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	m.Queries = append(m.Queries, query)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Results) {
		return m.Results[:limit], nil
	}
	return m.Results, nil
}
