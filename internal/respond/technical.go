package respond

import (
	"context"
	"fmt"
	"strings"

	"ticketflow/internal/llm"
	"ticketflow/internal/logging"
	"ticketflow/internal/search"
	"ticketflow/internal/ticket"
)

const technicalPrompt = `You are a technical support specialist. Help resolve this technical issue.

Customer Issue: %s

Additional Information (from web search):
%s

Provide a helpful, professional response that:
1. Acknowledges the issue
2. Provides clear troubleshooting steps or solution
3. Offers additional help if needed

Keep your response concise (max 400 words) and actionable.

Response:`

// technicalResponder handles bugs, errors, and product malfunctions. It
// consults the search collaborator for troubleshooting context first; a
// search failure is not fatal, the draft simply goes without context.
type technicalResponder struct {
	gen      llm.Generator
	searcher search.Searcher
	opts     llm.Options
}

func (r *technicalResponder) Respond(ctx context.Context, tk ticket.Ticket) Draft {
	log := logging.New("respond.technical")

	searchContext := "No additional information available"
	searchUsed := false
	if r.searcher != nil {
		query := "technical support " + truncate(tk.Text, 100)
		results, err := r.searcher.Search(ctx, query, searchResultLimit)
		if err != nil {
			log.Warn("search failed, drafting without context", "ticket", tk.ID, "error", err)
		} else if len(results) > 0 {
			searchContext = search.FormatContext(results)
			searchUsed = true
		}
	}

	prompt := fmt.Sprintf(technicalPrompt, tk.Text, searchContext)
	out, err := r.gen.Generate(ctx, prompt, r.opts)
	if err != nil {
		return fallbackDraft(log, tk, err)
	}
	text := strings.TrimSpace(out)
	if text == "" {
		return fallbackDraft(log, tk, llm.ErrGeneration)
	}

	return Draft{
		Text:       text,
		Confidence: scoreConfidence(len(text), searchUsed),
		SearchUsed: searchUsed,
	}
}

// truncate cuts s to at most n bytes for use inside a search query.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
