package commands

import (
	"github.com/spf13/cobra"
)

// Version is stamped into release builds.
var Version = "0.1.0"

// HookCmd is the parent command for lifecycle event ingestion. The agent
// runtime's hooks pipe a JSON payload to stdin and invoke one of the
// subcommands; everything past that point is the event log's problem.
var HookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Ingest subagent lifecycle events",
	Long:  "Read a lifecycle event payload from stdin and append it to the event log",
}

// hookStartedCmd records a task-start event.
var hookStartedCmd = &cobra.Command{
	Use:   "started",
	Short: "Record a subagent task start",
	Long:  "Read a task-start payload from stdin and append it to the start log",
	Run: func(cmd *cobra.Command, args []string) {
		RunHookStarted()
	},
}

// hookStoppedCmd records a task-completion event.
var hookStoppedCmd = &cobra.Command{
	Use:   "stopped",
	Short: "Record a subagent task completion",
	Long:  "Read a task-completion payload from stdin and append it to the completion log",
	Run: func(cmd *cobra.Command, args []string) {
		RunHookStopped()
	},
}

// ReportCmd renders the accounting window.
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show recent subagent tasks with usage and cost",
	Long:  "Correlate lifecycle events with transcripts and show the most recent tasks",
	Run: func(cmd *cobra.Command, args []string) {
		last, _ := cmd.Flags().GetInt("last")
		RunReport(last)
	},
}

// PricesCmd prints the active pricing table.
var PricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Show the active pricing table",
	Long:  "Print the rate table reports are priced against, including its version",
	Run: func(cmd *cobra.Command, args []string) {
		RunPrices()
	},
}

// DoctorCmd checks the local setup.
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check event log and pricing configuration",
	Long:  "Verify the event log directory is writable and the pricing table is valid",
	Run: func(cmd *cobra.Command, args []string) {
		RunDoctor()
	},
}

// ServeCmd runs the MCP server.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve usage reports over MCP (stdio)",
	Long:  "Expose the accounting report and pricing table as MCP tools over stdio",
	Run: func(cmd *cobra.Command, args []string) {
		RunServe()
	},
}

func init() {
	HookCmd.AddCommand(hookStartedCmd)
	HookCmd.AddCommand(hookStoppedCmd)
	ReportCmd.Flags().IntP("last", "n", 0, "Number of recent tasks to show (default from config)")
}
