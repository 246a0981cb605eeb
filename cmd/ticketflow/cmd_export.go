package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticketflow/internal/metrics"
	"ticketflow/internal/store"
	"ticketflow/internal/ticket"
)

var exportFlags struct {
	dbPath     string
	outputPath string
	limit      int
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export persisted ticket outcomes as a metrics JSON document",
	Long: `Reads outcomes from the SQLite store and writes them as a metrics
export (summary plus per-ticket records), readable by the metrics command.`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.dbPath, "db", store.DefaultDBPath, "SQLite store path")
	f.StringVarP(&exportFlags.outputPath, "output", "o", "", "Output path (stdout when unset)")
	f.IntVar(&exportFlags.limit, "limit", 0, "Max outcomes to export (0 = all)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(exportFlags.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	outcomes, err := st.ListOutcomes(cmd.Context(), exportFlags.limit)
	if err != nil {
		return fmt.Errorf("list outcomes: %w", err)
	}
	if len(outcomes) == 0 {
		return fmt.Errorf("no outcomes in %s", exportFlags.dbPath)
	}

	// ListOutcomes returns newest first; the ledger wants append order.
	ledger := metrics.NewLedger()
	for i := len(outcomes) - 1; i >= 0; i-- {
		o := outcomes[i]
		if err := ledger.Record(metrics.Record{
			TicketID:       o.TicketID,
			Timestamp:      o.ProcessedAt,
			Category:       ticket.Category(o.Category),
			Confidence:     o.Confidence,
			Escalated:      o.Escalated,
			Duration:       time.Duration(o.DurationNS),
			ViolationCount: o.ViolationCount,
		}); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if exportFlags.outputPath != "" {
		f, err := os.Create(exportFlags.outputPath)
		if err != nil {
			return fmt.Errorf("create export: %w", err)
		}
		defer f.Close()
		if err := ledger.Export(f); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d outcomes: %s\n", ledger.Len(), exportFlags.outputPath)
		return nil
	}
	return ledger.Export(out)
}
