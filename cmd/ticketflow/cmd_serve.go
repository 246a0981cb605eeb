package main

import (
	"github.com/spf13/cobra"

	"ticketflow/internal/logging"
	mcpserver "ticketflow/internal/mcp"
)

var serveFlags struct {
	dbPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workflow over MCP on stdio",
	Long: `Starts an MCP server over stdin/stdout exposing process_ticket,
get_metrics, get_recent, and export_metrics tools. The server monitors for
parent process death and self-terminates when the host disconnects.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.dbPath, "db", "", "SQLite path for outcome persistence (disabled when unset)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	engine, ledger, closeStore, err := buildEngine(serveFlags.dbPath)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := mcpserver.NewServer(engine, ledger)
	logging.New("mcp").Info("starting ticketflow MCP server over stdio (parent watchdog active)")
	return srv.Run(cmd.Context())
}
