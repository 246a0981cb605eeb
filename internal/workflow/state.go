package workflow

import (
	"time"

	"ticketflow/internal/guardrail"
	"ticketflow/internal/ticket"
)

// Stage is one position in the fixed linear run:
// received → classified → responded → validated → escalated → finalized.
// There are no backward transitions and no retries.
type Stage string

const (
	StageReceived   Stage = "received"
	StageClassified Stage = "classified"
	StageResponded  Stage = "responded"
	StageValidated  Stage = "validated"
	StageEscalated  Stage = "escalated"
	StageFinalized  Stage = "finalized"
)

// StageRecord logs one completed stage with its entry/exit timestamps.
type StageRecord struct {
	Stage     Stage     `json:"stage"`
	EnteredAt time.Time `json:"entered_at"`
	ExitedAt  time.Time `json:"exited_at"`
}

// ProcessingState is the mutable record threaded through one ticket's run.
// A state is owned exclusively by its run and never shared; it is
// discarded after finalization except for its projection into the metric
// record and the caller's Result.
type ProcessingState struct {
	Ticket ticket.Ticket
	Stage  Stage

	Category       ticket.Category
	ClassifyReason string

	Draft      string
	DraftSet   bool
	Confidence float64
	Fallback   bool
	SearchUsed bool

	Violations       []guardrail.Violation
	Blocked          bool
	Escalated        bool
	EscalationReason string

	History   []StageRecord
	StartedAt time.Time

	stageEnteredAt time.Time
}

func newState(tk ticket.Ticket) *ProcessingState {
	now := time.Now()
	return &ProcessingState{
		Ticket:         tk,
		Stage:          StageReceived,
		StartedAt:      now,
		stageEnteredAt: now,
	}
}

// advance closes the current stage and enters the next one.
func (s *ProcessingState) advance(next Stage) {
	now := time.Now()
	s.History = append(s.History, StageRecord{
		Stage:     s.Stage,
		EnteredAt: s.stageEnteredAt,
		ExitedAt:  now,
	})
	s.Stage = next
	s.stageEnteredAt = now
}

// escalate sets the escalation flag. The flag is sticky: once set it is
// never reset within the run, and the first reason wins.
func (s *ProcessingState) escalate(reason string) {
	if s.Escalated {
		return
	}
	s.Escalated = true
	s.EscalationReason = reason
}

// recordViolations appends guardrail findings. Append-only.
func (s *ProcessingState) recordViolations(violations []guardrail.Violation) {
	s.Violations = append(s.Violations, violations...)
}
