// Package store persists finalized ticket outcomes for later inspection.
// The workflow treats the store as an observer: the in-memory metrics
// ledger stays authoritative for the running process, while the store
// keeps a durable trail across processes.
package store

import (
	"context"
	"time"
)

// DefaultDBPath is the default relative path for the SQLite DB. Open()
// creates the parent directory.
const DefaultDBPath = ".ticketflow/ticketflow.db"

// Outcome is one finalized ticket run as persisted.
type Outcome struct {
	ID               int64
	TicketID         string
	TicketText       string
	Category         string
	Response         string
	Confidence       float64
	Escalated        bool
	EscalationReason string
	ViolationCount   int
	DurationNS       int64
	ProcessedAt      time.Time
}

// Store is the persistence facade. Implementations are SQLite or
// in-memory; callers depend only on this interface.
type Store interface {
	SaveOutcome(ctx context.Context, o Outcome) error
	ListOutcomes(ctx context.Context, limit int) ([]Outcome, error)
	Close() error
}
