package metrics

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"ticketflow/internal/ticket"
)

func sampleRecords() []Record {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return []Record{
		{TicketID: "TICKET-1", Timestamp: base, Category: ticket.CategoryTechnical, Confidence: 0.9, Escalated: false, Duration: 100 * time.Millisecond, ViolationCount: 0},
		{TicketID: "TICKET-2", Timestamp: base.Add(time.Second), Category: ticket.CategoryBilling, Confidence: 0.5, Escalated: true, Duration: 200 * time.Millisecond, ViolationCount: 2},
		{TicketID: "TICKET-3", Timestamp: base.Add(2 * time.Second), Category: ticket.CategoryTechnical, Confidence: 0.7, Escalated: false, Duration: 300 * time.Millisecond, ViolationCount: 1},
	}
}

func TestAggregate(t *testing.T) {
	l := NewLedger()
	for _, r := range sampleRecords() {
		if err := l.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	agg := l.Aggregate()
	if agg.Count != 3 {
		t.Errorf("count = %d, want 3", agg.Count)
	}
	if math.Abs(agg.EscalationRate-1.0/3.0) > 1e-9 {
		t.Errorf("escalation_rate = %g", agg.EscalationRate)
	}
	if math.Abs(agg.MeanConfidence-0.7) > 1e-9 {
		t.Errorf("mean_confidence = %g", agg.MeanConfidence)
	}
	if agg.MeanDuration != 200*time.Millisecond {
		t.Errorf("mean_duration = %v", agg.MeanDuration)
	}
	if agg.TotalViolations != 3 {
		t.Errorf("total_violations = %d", agg.TotalViolations)
	}
	wantBreakdown := map[ticket.Category]int{ticket.CategoryTechnical: 2, ticket.CategoryBilling: 1}
	if diff := cmp.Diff(wantBreakdown, agg.CategoryBreakdown); diff != "" {
		t.Errorf("category_breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateEmptyLedger(t *testing.T) {
	agg := NewLedger().Aggregate()
	if agg.Count != 0 || agg.EscalationRate != 0 || agg.MeanConfidence != 0 {
		t.Errorf("empty aggregate not zero: %+v", agg)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	l := NewLedger()
	for _, r := range sampleRecords() {
		_ = l.Record(r)
	}
	first := l.Aggregate()
	second := l.Aggregate()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("aggregate not idempotent (-first +second):\n%s", diff)
	}
}

func TestRecent(t *testing.T) {
	l := NewLedger()
	for _, r := range sampleRecords() {
		_ = l.Record(r)
	}
	recent := l.Recent(2)
	if len(recent) != 2 || recent[0].TicketID != "TICKET-2" || recent[1].TicketID != "TICKET-3" {
		t.Errorf("Recent(2) = %+v", recent)
	}
	if got := l.Recent(10); len(got) != 3 {
		t.Errorf("Recent beyond length = %d records", len(got))
	}
	if got := l.Recent(0); got != nil {
		t.Errorf("Recent(0) = %v, want nil", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	l := NewLedger()
	for _, r := range sampleRecords() {
		_ = l.Record(r)
	}

	var buf bytes.Buffer
	if err := l.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportWriteFailureReported(t *testing.T) {
	l := NewLedger()
	_ = l.Record(sampleRecords()[0])
	if err := l.Export(failWriter{}); err == nil {
		t.Fatal("expected export error")
	}
	// Ledger state unaffected by the failed export.
	if l.Len() != 1 {
		t.Errorf("ledger mutated by failed export: len = %d", l.Len())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("permission denied") }

func TestConcurrentAppendsAndReads(t *testing.T) {
	l := NewLedger()
	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = l.Record(Record{TicketID: "T", Category: ticket.CategoryGeneral, Confidence: 0.5})
			}
		}()
	}
	// Concurrent aggregate reads must observe consistent snapshots.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			agg := l.Aggregate()
			if agg.Count > 0 && agg.CategoryBreakdown[ticket.CategoryGeneral] != agg.Count {
				t.Errorf("torn snapshot: %+v", agg)
				return
			}
		}
	}()
	wg.Wait()

	if l.Len() != writers*perWriter {
		t.Errorf("len = %d, want %d (no record lost or duplicated)", l.Len(), writers*perWriter)
	}
}
