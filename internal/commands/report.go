package commands

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"subcost/internal/config"
	"subcost/internal/correlate"
	"subcost/internal/events"
	"subcost/internal/output"
	"subcost/internal/report"
)

// RunReport correlates the event logs with transcripts and renders the n
// most recent tasks. n <= 0 means use the configured default window.
func RunReport(n int) {
	cfg, err := config.Load()
	if err != nil {
		output.PrintError(err)
		return
	}
	store, err := events.Open(cfg.DataDirOrDefault())
	if err != nil {
		output.PrintError(err)
		return
	}
	table, err := cfg.PricingTable()
	if err != nil {
		output.PrintError(err)
		return
	}

	completions, err := store.ReadCompletions()
	if err != nil {
		output.PrintError(fmt.Errorf("read completion log: %w", err))
		return
	}
	starts, err := store.ReadStarts()
	if err != nil {
		output.PrintError(fmt.Errorf("read start log: %w", err))
		return
	}

	if n <= 0 {
		n = cfg.WindowOrDefault()
	}
	records := correlate.Window(completions, starts, table, n)

	output.Print(records, func() {
		styled := term.IsTerminal(int(os.Stdout.Fd()))
		report.Render(os.Stdout, records, styled)
	})
}

// openStore loads config and opens the event store, the shared preamble of
// every ingesting command.
func openStore() (*events.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return events.Open(cfg.DataDirOrDefault())
}
