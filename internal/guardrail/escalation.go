package guardrail

import (
	"fmt"
	"strings"
)

// urgencyWords always warrant human attention regardless of the configured
// trigger list.
var urgencyWords = []string{"urgent", "emergency", "critical", "asap", "immediately"}

// maxTicketQuestions is the tolerated number of '?' in a ticket before it
// counts as a complex multi-question request.
const maxTicketQuestions = 3

// Signal is the escalation decision for one run.
type Signal struct {
	Escalate bool
	Reason   string
}

// Escalation scans ticket text and draft for trigger phrases and checks
// the confidence floor. The first matching rule supplies the reason;
// later matches never overwrite it. Rule order is fixed: configured
// triggers, then urgency words, then question density, then the
// confidence threshold.
type Escalation struct {
	triggers  []string
	threshold float64
}

// NewEscalation builds the escalation detector from the configured trigger
// phrases and confidence threshold.
func NewEscalation(triggers []string, threshold float64) *Escalation {
	return &Escalation{triggers: triggers, threshold: threshold}
}

// Check evaluates the escalation rules against the original ticket text,
// the draft as produced by the responder, and the responder's confidence.
func (e *Escalation) Check(ticketText, draft string, confidence float64) Signal {
	ticketLower := strings.ToLower(ticketText)
	draftLower := strings.ToLower(draft)

	for _, trigger := range e.triggers {
		if trigger == "" {
			continue
		}
		t := strings.ToLower(trigger)
		if strings.Contains(ticketLower, t) || strings.Contains(draftLower, t) {
			return Signal{Escalate: true, Reason: fmt.Sprintf("trigger phrase %q detected", trigger)}
		}
	}

	for _, word := range urgencyWords {
		if strings.Contains(ticketLower, word) {
			return Signal{Escalate: true, Reason: fmt.Sprintf("urgent issue detected (%q)", word)}
		}
	}

	if n := strings.Count(ticketText, "?"); n > maxTicketQuestions {
		return Signal{Escalate: true, Reason: fmt.Sprintf("multiple complex questions (%d)", n)}
	}

	if confidence <= e.threshold {
		return Signal{Escalate: true, Reason: fmt.Sprintf("low confidence score: %.2f", confidence)}
	}

	return Signal{}
}
