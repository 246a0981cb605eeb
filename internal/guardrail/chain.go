package guardrail

import (
	"ticketflow/internal/config"
)

// Outcome is the aggregate result of running the full gate chain against
// one draft.
type Outcome struct {
	Draft      string      // final draft; the refusal text when blocked
	Blocked    bool        // content filter replaced the draft
	Violations []Violation // all findings, in evaluation order
	Signal     Signal      // escalation decision
}

// Chain runs the three evaluators in fixed order: content filter, response
// validator, escalation rules. A content-filter block short-circuits the
// validator for that draft body, but escalation rules always run — against
// the original ticket text and the original draft — because a blocked
// response is itself grounds for escalation.
type Chain struct {
	filter     *ContentFilter
	validator  *Validator
	escalation *Escalation
}

// NewChain builds the gate chain from the guardrail configuration.
func NewChain(cfg config.Guardrails) *Chain {
	return &Chain{
		filter:     NewContentFilter(cfg.ProhibitedTopics),
		validator:  NewValidator(cfg.MinResponseLength, cfg.MaxResponseLength),
		escalation: NewEscalation(cfg.EscalationTriggers, cfg.ConfidenceThreshold),
	}
}

// Evaluate applies the chain to a draft. confidence is the responder's
// score for the draft; ticketText is the original request.
func (c *Chain) Evaluate(ticketText, draft string, confidence float64) Outcome {
	out := Outcome{Draft: draft}

	filterViolations, matched := c.filter.Check(draft)
	out.Violations = append(out.Violations, filterViolations...)
	if len(matched) > 0 {
		out.Blocked = true
		out.Draft = RefusalText(matched)
	}

	if !out.Blocked {
		out.Violations = append(out.Violations, c.validator.Check(draft)...)
	}

	// Escalation scans the original draft, not the refusal replacement:
	// the customer's exposure is what matters for trigger phrases.
	out.Signal = c.escalation.Check(ticketText, draft, confidence)
	if !out.Signal.Escalate && out.Blocked {
		out.Signal = Signal{Escalate: true, Reason: "response blocked by content filter"}
	}

	return out
}
