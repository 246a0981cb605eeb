// Package respond drafts category-specific replies for support tickets.
// Each category has its own prompt template; technical and general
// responders consult the search collaborator before drafting, billing does
// not. A responder never fails: collaborator errors produce the fixed
// fallback draft with zero confidence so the guardrail chain always has a
// draft to evaluate.
package respond

import (
	"context"
	"log/slog"

	"ticketflow/internal/llm"
	"ticketflow/internal/search"
	"ticketflow/internal/ticket"
)

// FallbackText is delivered when the text-generation collaborator fails.
const FallbackText = "I'm unable to process this right now. Your ticket has been logged and a member of our support team will follow up with you shortly."

// searchResultLimit caps how many hits a responder folds into its prompt.
const searchResultLimit = 2

// Draft is the outcome of one respond call.
type Draft struct {
	Text       string
	Confidence float64 // in [0,1]; 0 on fallback
	SearchUsed bool    // search collaborator consulted and returned results
	Fallback   bool    // collaborator failed; Text is FallbackText

	// HighValueRefund marks billing tickets that mention a large refund;
	// carried as metadata only, it does not alter routing.
	HighValueRefund bool
}

// Responder produces a draft reply plus a confidence score for a ticket.
type Responder interface {
	Respond(ctx context.Context, tk ticket.Ticket) Draft
}

// Registry maps each category to its responder. The category set is closed,
// so the mapping is fixed at construction.
type Registry struct {
	responders map[ticket.Category]Responder
}

// NewRegistry wires the three category responders over the given
// collaborators. base supplies the configured generation options; each
// responder overrides only the temperature suited to its register.
func NewRegistry(gen llm.Generator, searcher search.Searcher, base llm.Options) *Registry {
	return &Registry{responders: map[ticket.Category]Responder{
		ticket.CategoryTechnical: &technicalResponder{gen: gen, searcher: searcher, opts: withTemperature(base, 0.3)},
		ticket.CategoryBilling:   &billingResponder{gen: gen, opts: withTemperature(base, 0.3)},
		ticket.CategoryGeneral:   &generalResponder{gen: gen, searcher: searcher, opts: withTemperature(base, 0.4)},
	}}
}

func withTemperature(base llm.Options, t float64) llm.Options {
	base.Temperature = t
	return base
}

// For returns the responder for a category. Unknown categories (which the
// classifier never produces) fall back to the general responder.
func (r *Registry) For(cat ticket.Category) Responder {
	if resp, ok := r.responders[cat]; ok {
		return resp
	}
	return r.responders[ticket.CategoryGeneral]
}

// scoreConfidence is the heuristic confidence for a successful draft:
// base 0.7, lowered for very short drafts, raised for substantial ones and
// when search context informed the reply. Clamped to [0,1].
func scoreConfidence(draftLen int, searchUsed bool) float64 {
	confidence := 0.7
	if draftLen < 50 {
		confidence -= 0.2
	} else if draftLen > 200 {
		confidence += 0.1
	}
	if searchUsed {
		confidence += 0.15
	}
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// fallbackDraft logs the collaborator failure and returns the fixed
// fallback with zero confidence.
func fallbackDraft(log *slog.Logger, tk ticket.Ticket, err error) Draft {
	log.Warn("generation failed, using fallback response", "ticket", tk.ID, "error", err)
	return Draft{Text: FallbackText, Confidence: 0, Fallback: true}
}
