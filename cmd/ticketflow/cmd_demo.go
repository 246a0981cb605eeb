package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticketflow/internal/format"
)

// demoTickets exercises every route: plain technical and billing runs, a
// general inquiry, an escalation trigger, urgency, and a multi-question
// ticket.
var demoTickets = []string{
	"My app crashes when uploading files larger than 10MB",
	"I was charged twice this month, please refund the duplicate invoice",
	"What are your support hours and where can I find the documentation?",
	"This is outrageous, I am getting my lawyer involved if this is not fixed",
	"URGENT: production is down and we are losing customers right now",
	"How do I reset my password? Why was I logged out? Is my data safe? Can I export it? Who do I contact?",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a canned ticket set through the workflow",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	engine, ledger, closeStore, err := buildEngine("")
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	tb := format.NewTable(format.ASCII)
	tb.Header("Ticket", "Category", "Conf", "Esc", "Reason")
	tb.Columns(
		format.ColumnConfig{Number: 1, MaxWidth: 44},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, MaxWidth: 36},
	)

	for _, text := range demoTickets {
		res, err := engine.ProcessTicket(cmd.Context(), text)
		if err != nil {
			return err
		}
		tb.Row(format.Truncate(text, 44),
			string(res.Category),
			format.FmtConfidence(res.Confidence),
			format.BoolMark(res.Escalated),
			format.Truncate(res.EscalationReason, 36))
	}
	fmt.Fprintln(out, tb.String())

	agg := ledger.Aggregate()
	fmt.Fprintf(out, "\n%d tickets, %s escalated, mean confidence %s\n",
		agg.Count, format.FmtPercent(agg.EscalationRate), format.FmtConfidence(agg.MeanConfidence))
	return nil
}
