package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ticketflow/internal/format"
	"ticketflow/internal/metrics"
)

var metricsFlags struct {
	inputPath string
	recent    int
	markdown  bool
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Summarize an exported metrics session",
	Long: `Reads a metrics export JSON (produced by 'batch --export' or the
export command) and prints the aggregate summary plus the most recent
per-ticket records.`,
	RunE: runMetrics,
}

func init() {
	f := metricsCmd.Flags()
	f.StringVarP(&metricsFlags.inputPath, "file", "f", "", "Metrics export JSON path (required)")
	f.IntVar(&metricsFlags.recent, "recent", 10, "Recent records to list (0 disables)")
	f.BoolVar(&metricsFlags.markdown, "markdown", false, "Render tables as Markdown")

	_ = metricsCmd.MarkFlagRequired("file")
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(metricsFlags.inputPath)
	if err != nil {
		return fmt.Errorf("open metrics: %w", err)
	}
	defer f.Close()

	records, err := metrics.Import(f)
	if err != nil {
		return err
	}

	ledger := metrics.NewLedger()
	for _, rec := range records {
		if err := ledger.Record(rec); err != nil {
			return err
		}
	}

	mode := format.ASCII
	if metricsFlags.markdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()
	agg := ledger.Aggregate()

	summary := format.NewTable(mode)
	summary.Header("Metric", "Value")
	summary.Row("Tickets processed", agg.Count)
	summary.Row("Escalation rate", format.FmtPercent(agg.EscalationRate))
	summary.Row("Mean confidence", format.FmtConfidence(agg.MeanConfidence))
	summary.Row("Mean processing time", format.FmtDuration(agg.MeanDuration))
	summary.Row("Total violations", agg.TotalViolations)
	for cat, n := range agg.CategoryBreakdown {
		summary.Row(fmt.Sprintf("Category %s", cat), n)
	}
	fmt.Fprintln(out, summary.String())

	if metricsFlags.recent > 0 && ledger.Len() > 0 {
		tb := format.NewTable(mode)
		tb.Header("Ticket", "Category", "Conf", "Esc", "Viol", "Time")
		tb.Columns(
			format.ColumnConfig{Number: 3, Align: format.AlignRight},
			format.ColumnConfig{Number: 5, Align: format.AlignRight},
			format.ColumnConfig{Number: 6, Align: format.AlignRight},
		)
		for _, rec := range ledger.Recent(metricsFlags.recent) {
			tb.Row(rec.TicketID,
				string(rec.Category),
				format.FmtConfidence(rec.Confidence),
				format.BoolMark(rec.Escalated),
				rec.ViolationCount,
				format.FmtDuration(rec.Duration))
		}
		fmt.Fprintln(out, tb.String())
	}
	return nil
}
