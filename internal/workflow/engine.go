// Package workflow sequences a support ticket through classification,
// category routing, the guardrail gate chain, and the escalation decision,
// recording one metric record per completed run. The engine is the only
// component with routing policy; classifier, responders, and guardrails
// return structured results with no side effects of their own.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ticketflow/internal/classify"
	"ticketflow/internal/guardrail"
	"ticketflow/internal/logging"
	"ticketflow/internal/metrics"
	"ticketflow/internal/respond"
	"ticketflow/internal/store"
	"ticketflow/internal/ticket"
)

// Result is the structured outcome returned to the caller for every
// processed ticket, failures included. Only a ledger write failure
// surfaces as an error instead.
type Result struct {
	TicketID         string                `json:"ticket_id"`
	Category         ticket.Category       `json:"category"`
	Response         string                `json:"response"`
	Confidence       float64               `json:"confidence"`
	Escalated        bool                  `json:"escalated"`
	EscalationReason string                `json:"escalation_reason,omitempty"`
	ProcessingTime   time.Duration         `json:"processing_time_ns"`
	Violations       []guardrail.Violation `json:"violations,omitempty"`
	SearchUsed       bool                  `json:"search_used"`
	Fallback         bool                  `json:"fallback"`
}

// Engine drives the ticket state machine. One engine serves many
// concurrent runs; each run allocates its own ProcessingState, and the
// metrics ledger is the only shared mutable resource.
type Engine struct {
	classifier *classify.Classifier
	responders *respond.Registry
	chain      *guardrail.Chain
	ledger     *metrics.Ledger
	outcomes   store.Store // optional; nil disables persistence
	log        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches an outcome store. Persistence failures are logged,
// never fatal: the store is an observer of finished runs, not a gate.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.outcomes = s }
}

// New wires an engine over its collaborating components. The ledger is
// passed in, not owned: its lifetime is the caller's.
func New(classifier *classify.Classifier, responders *respond.Registry, chain *guardrail.Chain, ledger *metrics.Ledger, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		responders: responders,
		chain:      chain,
		ledger:     ledger,
		log:        logging.New("workflow"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTicket runs one ticket through the full state machine. A run
// always completes to finalized once received: collaborator failures are
// absorbed into the result (fallback draft, forced escalation), and only
// a ledger write failure is returned as an error.
func (e *Engine) ProcessTicket(ctx context.Context, text string) (*Result, error) {
	state := newState(ticket.New(text))
	e.log.Info("ticket received", "ticket", state.Ticket.ID, "chars", len(text))

	// received → classified
	cls, err := e.classifier.Classify(ctx, text)
	if err != nil {
		// Collaborator-level fatal error: jump straight to finalized with a
		// synthetic response and escalation forced.
		e.log.Warn("classification failed, forcing escalation", "ticket", state.Ticket.ID, "error", err)
		state.Category = ticket.CategoryGeneral
		state.Draft = respond.FallbackText
		state.DraftSet = true
		state.Confidence = 0
		state.Fallback = true
		state.escalate("classification failure: collaborator error")
		state.advance(StageFinalized)
		return e.finalize(ctx, state)
	}
	state.Category = cls.Category
	state.ClassifyReason = cls.Reason
	state.Confidence = cls.Confidence
	state.advance(StageClassified)
	e.log.Info("ticket classified", "ticket", state.Ticket.ID, "category", string(cls.Category), "recognized", cls.Recognized)

	// classified → responded
	draft := e.responders.For(state.Category).Respond(ctx, state.Ticket)
	state.Draft = draft.Text
	state.DraftSet = true
	state.Confidence = draft.Confidence
	state.Fallback = draft.Fallback
	state.SearchUsed = draft.SearchUsed
	state.advance(StageResponded)

	// responded → validated
	outcome := e.chain.Evaluate(state.Ticket.Text, state.Draft, state.Confidence)
	state.Draft = outcome.Draft
	state.Blocked = outcome.Blocked
	state.recordViolations(outcome.Violations)
	if outcome.Signal.Escalate {
		state.escalate(outcome.Signal.Reason)
	}
	state.advance(StageValidated)

	// validated → escalated: pass-through check of the already-set flag.
	if state.Escalated {
		e.log.Info("ticket escalated", "ticket", state.Ticket.ID, "reason", state.EscalationReason)
		state.Draft = state.Draft + "\n\n---\n" + escalationNotice(state.EscalationReason)
	}
	state.advance(StageEscalated)

	state.advance(StageFinalized)
	return e.finalize(ctx, state)
}

// finalize assembles the result, appends the metric record, and hands the
// outcome to the store when one is attached. The state is not retained.
func (e *Engine) finalize(ctx context.Context, state *ProcessingState) (*Result, error) {
	elapsed := time.Since(state.StartedAt)

	record := metrics.Record{
		TicketID:       state.Ticket.ID,
		Timestamp:      time.Now().UTC(),
		Category:       state.Category,
		Confidence:     state.Confidence,
		Escalated:      state.Escalated,
		Duration:       elapsed,
		ViolationCount: len(state.Violations),
	}
	if err := e.ledger.Record(record); err != nil {
		return nil, fmt.Errorf("%w: %v", metrics.ErrLedgerWrite, err)
	}

	result := &Result{
		TicketID:         state.Ticket.ID,
		Category:         state.Category,
		Response:         state.Draft,
		Confidence:       state.Confidence,
		Escalated:        state.Escalated,
		EscalationReason: state.EscalationReason,
		ProcessingTime:   elapsed,
		Violations:       state.Violations,
		SearchUsed:       state.SearchUsed,
		Fallback:         state.Fallback,
	}

	if e.outcomes != nil {
		if err := e.outcomes.SaveOutcome(ctx, store.Outcome{
			TicketID:         result.TicketID,
			TicketText:       state.Ticket.Text,
			Category:         string(result.Category),
			Response:         result.Response,
			Confidence:       result.Confidence,
			Escalated:        result.Escalated,
			EscalationReason: result.EscalationReason,
			ViolationCount:   len(result.Violations),
			DurationNS:       int64(elapsed),
			ProcessedAt:      record.Timestamp,
		}); err != nil {
			e.log.Warn("outcome persistence failed", "ticket", result.TicketID, "error", err)
		}
	}

	e.log.Info("ticket finalized",
		"ticket", result.TicketID,
		"category", string(result.Category),
		"escalated", result.Escalated,
		"violations", len(result.Violations),
		"elapsed", elapsed)
	return result, nil
}

// escalationNotice is appended to the response of an escalated run.
func escalationNotice(reason string) string {
	return fmt.Sprintf(
		"This ticket has been flagged for human review (%s). "+
			"A support specialist will review this case and reach out to you shortly.", reason)
}
