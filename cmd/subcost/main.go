package main

import (
	"os"

	"github.com/spf13/cobra"

	"subcost/internal/commands"
	"subcost/internal/output"
)

var jsonFlag bool

var rootCmd = &cobra.Command{
	Use:   "subcost",
	Short: "Cost accounting for subagent tasks",
	Long:  "Track spawned subagent tasks via lifecycle hooks and report per-task token usage and cost from their transcripts",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.JSONMode = jsonFlag
	},
	// Bare `subcost` shows the default report window.
	Run: func(cmd *cobra.Command, args []string) {
		commands.RunReport(0)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")

	rootCmd.AddCommand(commands.HookCmd)
	rootCmd.AddCommand(commands.ReportCmd)
	rootCmd.AddCommand(commands.PricesCmd)
	rootCmd.AddCommand(commands.DoctorCmd)
	rootCmd.AddCommand(commands.ServeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
