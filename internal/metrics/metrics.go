// Package metrics keeps the process-wide ledger of per-ticket outcomes.
// The ledger is append-only for the orchestrator's lifetime: records are
// never deleted or mutated, aggregates are recomputed fresh on every read,
// and the full sequence can be exported and re-imported loss-lessly.
package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"ticketflow/internal/ticket"
)

var (
	// ErrLedgerWrite is the unrecoverable append failure.
	ErrLedgerWrite = errors.New("metrics: ledger write failed")
	// ErrExport wraps serialization or write failures during export.
	ErrExport = errors.New("metrics: export failed")
)

// Record is one completed ticket outcome. Immutable once appended.
type Record struct {
	TicketID       string          `json:"ticket_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Category       ticket.Category `json:"category"`
	Confidence     float64         `json:"confidence"`
	Escalated      bool            `json:"escalated"`
	Duration       time.Duration   `json:"duration_ns"`
	ViolationCount int             `json:"violation_count"`
}

// Aggregate is the derived summary over the current sequence.
type Aggregate struct {
	Count             int                     `json:"count"`
	EscalationRate    float64                 `json:"escalation_rate"` // fraction in [0,1]
	CategoryBreakdown map[ticket.Category]int `json:"category_breakdown"`
	MeanConfidence    float64                 `json:"mean_confidence"`
	MeanDuration      time.Duration           `json:"mean_duration"`
	TotalViolations   int                     `json:"total_violations"`
}

// Ledger is the only cross-run shared mutable structure. Appends are
// serialized; reads take a consistent snapshot and may run concurrently
// with appends.
type Ledger struct {
	mu           sync.RWMutex
	records      []Record
	sessionStart time.Time
}

// NewLedger creates an empty ledger; its lifetime is the orchestrator's.
func NewLedger() *Ledger {
	return &Ledger{sessionStart: time.Now().UTC()}
}

// Record appends one outcome. O(1); fails only on storage exhaustion,
// which is fatal for the run that observed it.
func (l *Ledger) Record(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
	return nil
}

// Len reports the number of appended records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Recent returns the last n records, oldest first. n <= 0 returns nil.
func (l *Ledger) Recent(n int) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 || len(l.records) == 0 {
		return nil
	}
	if n > len(l.records) {
		n = len(l.records)
	}
	out := make([]Record, n)
	copy(out, l.records[len(l.records)-n:])
	return out
}

// Aggregate recomputes the summary over the current sequence. Never
// cached: two calls with no intervening Record yield identical results.
func (l *Ledger) Aggregate() Aggregate {
	l.mu.RLock()
	defer l.mu.RUnlock()

	agg := Aggregate{CategoryBreakdown: make(map[ticket.Category]int)}
	agg.Count = len(l.records)
	if agg.Count == 0 {
		return agg
	}

	var escalated int
	var confidenceSum float64
	var durationSum time.Duration
	for _, r := range l.records {
		agg.CategoryBreakdown[r.Category]++
		confidenceSum += r.Confidence
		durationSum += r.Duration
		agg.TotalViolations += r.ViolationCount
		if r.Escalated {
			escalated++
		}
	}
	agg.EscalationRate = float64(escalated) / float64(agg.Count)
	agg.MeanConfidence = confidenceSum / float64(agg.Count)
	agg.MeanDuration = durationSum / time.Duration(agg.Count)
	return agg
}

// exportEnvelope is the serialized form: the session window and summary
// travel alongside the records, but only the records matter for import.
type exportEnvelope struct {
	SessionStart time.Time `json:"session_start"`
	ExportedAt   time.Time `json:"exported_at"`
	Summary      Aggregate `json:"summary"`
	Records      []Record  `json:"records"`
}

// Export serializes the full ordered sequence to w as JSON. Write and
// serialization failures are reported, never swallowed; the in-memory
// ledger is unaffected either way.
func (l *Ledger) Export(w io.Writer) error {
	l.mu.RLock()
	records := make([]Record, len(l.records))
	copy(records, l.records)
	sessionStart := l.sessionStart
	l.mu.RUnlock()

	env := exportEnvelope{
		SessionStart: sessionStart,
		ExportedAt:   time.Now().UTC(),
		Summary:      aggregateOf(records),
		Records:      records,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

// Import reads an exported envelope from r and returns its record
// sequence, field-by-field equal to the exported one.
func Import(r io.Reader) ([]Record, error) {
	var env exportEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return env.Records, nil
}

// aggregateOf computes the summary for a detached record slice.
func aggregateOf(records []Record) Aggregate {
	tmp := Ledger{records: records}
	return tmp.Aggregate()
}
