// ticketflow is the main CLI: process a ticket, batch-process a file of
// tickets, inspect session metrics, export them, or serve the workflow
// over MCP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ticketflow/internal/config"
	"ticketflow/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ticketflow",
	Short: "Guardrailed support-ticket workflow",
	Long: "Ticketflow runs customer support tickets through classification,\n" +
		"category-specific response drafting, a guardrail gate chain, and an\n" +
		"escalation decision, keeping a metrics ledger of every run.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file (YAML/JSON); defaults apply when unset")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.Version = version
}

// setup initializes logging and loads the immutable process config before
// any command runs.
func setup(_ *cobra.Command, _ []string) error {
	logging.Init(rootFlags.logLevel, rootFlags.logFormat, os.Stderr)

	if rootFlags.configPath == "" {
		cfg = config.Default()
		return nil
	}
	loaded, err := config.LoadFromPath(rootFlags.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", rootFlags.configPath, err)
	}
	cfg = loaded
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
