package main

import (
	"fmt"
	"time"

	"ticketflow/internal/classify"
	"ticketflow/internal/demo"
	"ticketflow/internal/guardrail"
	"ticketflow/internal/llm"
	"ticketflow/internal/metrics"
	"ticketflow/internal/respond"
	"ticketflow/internal/search"
	"ticketflow/internal/store"
	"ticketflow/internal/workflow"
)

// buildEngine wires a workflow engine over the deterministic collaborators
// using the loaded config. dbPath == "" disables outcome persistence; the
// returned closer is a no-op in that case.
func buildEngine(dbPath string) (*workflow.Engine, *metrics.Ledger, func() error, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	gen := llm.WithTimeout(demo.Generator{}, timeout)
	searcher := search.WithTimeout(demo.Searcher{}, timeout)

	ledger := metrics.NewLedger()
	opts := []workflow.Option{}
	closer := func() error { return nil }

	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open store: %w", err)
		}
		opts = append(opts, workflow.WithStore(st))
		closer = st.Close
	}

	engine := workflow.New(
		classify.New(gen),
		respond.NewRegistry(gen, searcher, llm.Options{
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}),
		guardrail.NewChain(cfg.Guardrails),
		ledger,
		opts...,
	)
	return engine, ledger, closer, nil
}
