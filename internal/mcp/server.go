// Package mcp exposes the ticket workflow over the Model Context Protocol
// so agent hosts can process tickets and read session metrics as tools.
package mcp

import (
	"bytes"
	"context"
	"fmt"

	"ticketflow/internal/logging"
	"ticketflow/internal/metrics"
	"ticketflow/internal/ticket"
	"ticketflow/internal/workflow"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around a workflow engine and its ledger.
type Server struct {
	MCPServer *sdkmcp.Server

	engine *workflow.Engine
	ledger *metrics.Ledger
}

// NewServer creates an MCP server exposing ticket-processing and metrics
// tools over the given engine and ledger.
func NewServer(engine *workflow.Engine, ledger *metrics.Ledger) *Server {
	s := &Server{engine: engine, ledger: ledger}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "ticketflow", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "process_ticket",
		Description: "Run a support ticket through classification, response drafting, guardrails, and escalation. Returns the full structured result.",
	}, s.handleProcessTicket)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregate session metrics: ticket count, escalation rate, category breakdown, mean confidence.",
	}, s.handleGetMetrics)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_recent",
		Description: "Get the most recent per-ticket metric records, oldest first.",
	}, s.handleGetRecent)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "export_metrics",
		Description: "Export the full metrics session (summary plus per-ticket records) as a JSON document.",
	}, s.handleExportMetrics)
}

// --- Tool input/output types ---

type processTicketInput struct {
	Text string `json:"text" jsonschema:"the customer's ticket text"`
}

type processTicketOutput struct {
	TicketID         string  `json:"ticket_id"`
	Category         string  `json:"category"`
	Response         string  `json:"response"`
	Confidence       float64 `json:"confidence"`
	Escalated        bool    `json:"escalated"`
	EscalationReason string  `json:"escalation_reason,omitempty"`
	Violations       int     `json:"violations"`
	ProcessingMS     int64   `json:"processing_ms"`
}

type getMetricsInput struct{}

type getMetricsOutput struct {
	Count             int                     `json:"count"`
	EscalationRate    float64                 `json:"escalation_rate"`
	CategoryBreakdown map[ticket.Category]int `json:"category_breakdown"`
	MeanConfidence    float64                 `json:"mean_confidence"`
	MeanProcessingMS  int64                   `json:"mean_processing_ms"`
	TotalViolations   int                     `json:"total_violations"`
}

type getRecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max records to return (default 10)"`
}

type getRecentOutput struct {
	Records []metrics.Record `json:"records"`
	Total   int              `json:"total"`
}

type exportMetricsInput struct{}

type exportMetricsOutput struct {
	Document string `json:"document"`
}

// --- Tool handlers ---

func (s *Server) handleProcessTicket(ctx context.Context, _ *sdkmcp.CallToolRequest, input processTicketInput) (*sdkmcp.CallToolResult, processTicketOutput, error) {
	logger := logging.New("mcp")
	res, err := s.engine.ProcessTicket(ctx, input.Text)
	if err != nil {
		logger.Error("process_ticket failed", "error", err)
		return nil, processTicketOutput{}, fmt.Errorf("process_ticket: %w", err)
	}

	return nil, processTicketOutput{
		TicketID:         res.TicketID,
		Category:         string(res.Category),
		Response:         res.Response,
		Confidence:       res.Confidence,
		Escalated:        res.Escalated,
		EscalationReason: res.EscalationReason,
		Violations:       len(res.Violations),
		ProcessingMS:     res.ProcessingTime.Milliseconds(),
	}, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *sdkmcp.CallToolRequest, _ getMetricsInput) (*sdkmcp.CallToolResult, getMetricsOutput, error) {
	agg := s.ledger.Aggregate()
	return nil, getMetricsOutput{
		Count:             agg.Count,
		EscalationRate:    agg.EscalationRate,
		CategoryBreakdown: agg.CategoryBreakdown,
		MeanConfidence:    agg.MeanConfidence,
		MeanProcessingMS:  agg.MeanDuration.Milliseconds(),
		TotalViolations:   agg.TotalViolations,
	}, nil
}

func (s *Server) handleGetRecent(_ context.Context, _ *sdkmcp.CallToolRequest, input getRecentInput) (*sdkmcp.CallToolResult, getRecentOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	return nil, getRecentOutput{
		Records: s.ledger.Recent(limit),
		Total:   s.ledger.Len(),
	}, nil
}

func (s *Server) handleExportMetrics(_ context.Context, _ *sdkmcp.CallToolRequest, _ exportMetricsInput) (*sdkmcp.CallToolResult, exportMetricsOutput, error) {
	var buf bytes.Buffer
	if err := s.ledger.Export(&buf); err != nil {
		return nil, exportMetricsOutput{}, fmt.Errorf("export_metrics: %w", err)
	}
	return nil, exportMetricsOutput{Document: buf.String()}, nil
}

// Run serves MCP over stdio until the context is canceled, the client
// disconnects, or the parent process dies.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	WatchParent(ctx, cancel)
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
