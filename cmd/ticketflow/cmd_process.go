package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var processFlags struct {
	dbPath string
	asJSON bool
}

var processCmd = &cobra.Command{
	Use:   "process <ticket text>",
	Short: "Run one support ticket through the workflow",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVar(&processFlags.dbPath, "db", "", "SQLite path for outcome persistence (disabled when unset)")
	f.BoolVar(&processFlags.asJSON, "json", false, "Print the full structured result as JSON")
}

func runProcess(cmd *cobra.Command, args []string) error {
	engine, _, closeStore, err := buildEngine(processFlags.dbPath)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := engine.ProcessTicket(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	out := cmd.OutOrStdout()
	if processFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "Ticket:     %s\n", res.TicketID)
	fmt.Fprintf(out, "Category:   %s\n", res.Category)
	fmt.Fprintf(out, "Confidence: %.2f\n", res.Confidence)
	if res.Escalated {
		fmt.Fprintf(out, "Escalated:  yes (%s)\n", res.EscalationReason)
	} else {
		fmt.Fprintf(out, "Escalated:  no\n")
	}
	if len(res.Violations) > 0 {
		fmt.Fprintf(out, "Violations:\n")
		for _, v := range res.Violations {
			fmt.Fprintf(out, "  [%s] %s: %s\n", v.Evaluator, v.Kind, v.Detail)
		}
	}
	fmt.Fprintf(out, "\n%s\n", res.Response)
	return nil
}
