package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"ticketflow/internal/classify"
	"ticketflow/internal/config"
	"ticketflow/internal/demo"
	"ticketflow/internal/guardrail"
	"ticketflow/internal/llm"
	"ticketflow/internal/metrics"
	"ticketflow/internal/respond"
	"ticketflow/internal/workflow"
)

func newTestServer() *Server {
	cfg := config.Default()
	ledger := metrics.NewLedger()
	engine := workflow.New(
		classify.New(demo.Generator{}),
		respond.NewRegistry(demo.Generator{}, demo.Searcher{}, llm.Options{MaxTokens: cfg.LLM.MaxTokens}),
		guardrail.NewChain(cfg.Guardrails),
		ledger,
	)
	return NewServer(engine, ledger)
}

func TestHandleProcessTicket(t *testing.T) {
	s := newTestServer()

	_, out, err := s.handleProcessTicket(context.Background(), nil,
		processTicketInput{Text: "My app crashes when uploading files"})
	if err != nil {
		t.Fatalf("handleProcessTicket: %v", err)
	}
	if out.Category != "TECHNICAL" {
		t.Errorf("category = %s, want TECHNICAL", out.Category)
	}
	if out.Response == "" || out.TicketID == "" {
		t.Errorf("incomplete output: %+v", out)
	}
	if out.Escalated {
		t.Errorf("unexpected escalation: %q", out.EscalationReason)
	}
}

func TestHandleGetMetricsReflectsRuns(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	for _, text := range []string{
		"My app crashes when uploading files",
		"I was charged twice, please refund the second invoice",
	} {
		if _, _, err := s.handleProcessTicket(ctx, nil, processTicketInput{Text: text}); err != nil {
			t.Fatalf("handleProcessTicket(%q): %v", text, err)
		}
	}

	_, out, err := s.handleGetMetrics(ctx, nil, getMetricsInput{})
	if err != nil {
		t.Fatalf("handleGetMetrics: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("count = %d, want 2", out.Count)
	}
	if out.CategoryBreakdown["TECHNICAL"] != 1 || out.CategoryBreakdown["BILLING"] != 1 {
		t.Errorf("breakdown = %v", out.CategoryBreakdown)
	}
}

func TestHandleGetRecent(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := s.handleProcessTicket(ctx, nil, processTicketInput{Text: "hello there, quick question."}); err != nil {
			t.Fatalf("handleProcessTicket: %v", err)
		}
	}

	_, out, err := s.handleGetRecent(ctx, nil, getRecentInput{Limit: 2})
	if err != nil {
		t.Fatalf("handleGetRecent: %v", err)
	}
	if len(out.Records) != 2 || out.Total != 3 {
		t.Errorf("records = %d, total = %d; want 2, 3", len(out.Records), out.Total)
	}
}

func TestHandleExportMetrics(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	if _, _, err := s.handleProcessTicket(ctx, nil, processTicketInput{Text: "My app crashes when uploading files"}); err != nil {
		t.Fatalf("handleProcessTicket: %v", err)
	}

	_, out, err := s.handleExportMetrics(ctx, nil, exportMetricsInput{})
	if err != nil {
		t.Fatalf("handleExportMetrics: %v", err)
	}
	if !json.Valid([]byte(out.Document)) {
		t.Fatalf("export is not valid JSON:\n%s", out.Document)
	}
	if !strings.Contains(out.Document, "records") {
		t.Errorf("export missing records section:\n%s", out.Document)
	}
}
