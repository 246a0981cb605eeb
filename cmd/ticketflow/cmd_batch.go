package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ticketflow/internal/format"
	"ticketflow/internal/workflow"
)

var batchFlags struct {
	inputPath  string
	dbPath     string
	exportPath string
	parallel   int
	markdown   bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process a file of tickets, one per line",
	Long: `Reads tickets from a text file (one ticket per line, blank lines and
#-comments skipped) and processes them concurrently. Prints a per-ticket
table and the session summary; optionally exports the metrics JSON.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.inputPath, "file", "f", "", "Ticket file path (required)")
	f.StringVar(&batchFlags.dbPath, "db", "", "SQLite path for outcome persistence (disabled when unset)")
	f.StringVarP(&batchFlags.exportPath, "export", "o", "", "Write the metrics export JSON to this path")
	f.IntVar(&batchFlags.parallel, "parallel", 4, "Max tickets processed concurrently")
	f.BoolVar(&batchFlags.markdown, "markdown", false, "Render the table as Markdown")

	_ = batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	tickets, err := readTickets(batchFlags.inputPath)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		return fmt.Errorf("no tickets in %s", batchFlags.inputPath)
	}

	engine, ledger, closeStore, err := buildEngine(batchFlags.dbPath)
	if err != nil {
		return err
	}
	defer closeStore()

	// Results keep input order regardless of completion order.
	results := make([]*workflow.Result, len(tickets))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchFlags.parallel)
	for i, text := range tickets {
		g.Go(func() error {
			res, err := engine.ProcessTicket(ctx, text)
			if err != nil {
				return fmt.Errorf("ticket %d: %w", i+1, err)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	mode := format.ASCII
	if batchFlags.markdown {
		mode = format.Markdown
	}

	out := cmd.OutOrStdout()
	tb := format.NewTable(mode)
	tb.Header("#", "Ticket", "Category", "Conf", "Esc", "Viol", "Time")
	tb.Columns(
		format.ColumnConfig{Number: 2, MaxWidth: 40},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
		format.ColumnConfig{Number: 7, Align: format.AlignRight},
	)
	for i, res := range results {
		tb.Row(i+1,
			format.Truncate(tickets[i], 40),
			string(res.Category),
			format.FmtConfidence(res.Confidence),
			format.BoolMark(res.Escalated),
			len(res.Violations),
			format.FmtDuration(res.ProcessingTime))
	}
	fmt.Fprintln(out, tb.String())

	agg := ledger.Aggregate()
	fmt.Fprintf(out, "\nProcessed %d tickets: %s escalated, mean confidence %s\n",
		agg.Count, format.FmtPercent(agg.EscalationRate), format.FmtConfidence(agg.MeanConfidence))

	if batchFlags.exportPath != "" {
		f, err := os.Create(batchFlags.exportPath)
		if err != nil {
			return fmt.Errorf("create export: %w", err)
		}
		defer f.Close()
		if err := ledger.Export(f); err != nil {
			return err
		}
		fmt.Fprintf(out, "Metrics exported: %s\n", batchFlags.exportPath)
	}
	return nil
}

// readTickets loads one ticket per line, skipping blanks and #-comments.
func readTickets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tickets: %w", err)
	}
	defer f.Close()

	var tickets []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickets = append(tickets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tickets: %w", err)
	}
	return tickets, nil
}
