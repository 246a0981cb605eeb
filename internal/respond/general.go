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

const generalPrompt = `You are a customer support agent. Help answer this general inquiry.

Customer Question: %s

Additional Information (from web search):
%s

Provide a helpful, friendly response that:
1. Directly answers their question
2. Provides relevant information
3. Offers additional assistance if needed

Keep your response conversational but professional (max 300 words).

Response:`

// generalResponder handles everything that is neither technical nor
// billing: feature requests, information requests, other questions.
type generalResponder struct {
	gen      llm.Generator
	searcher search.Searcher
	opts     llm.Options
}

func (r *generalResponder) Respond(ctx context.Context, tk ticket.Ticket) Draft {
	log := logging.New("respond.general")

	searchContext := "No additional information needed"
	searchUsed := false
	if r.searcher != nil {
		results, err := r.searcher.Search(ctx, truncate(tk.Text, 100), searchResultLimit)
		if err != nil {
			log.Warn("search failed, drafting without context", "ticket", tk.ID, "error", err)
		} else if len(results) > 0 {
			searchContext = search.FormatContext(results)
			searchUsed = true
		}
	}

	prompt := fmt.Sprintf(generalPrompt, tk.Text, searchContext)
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
