package commands

import (
	"fmt"
	"os"

	"subcost/internal/config"
	"subcost/internal/events"
	"subcost/internal/ui"
)

// RunDoctor performs diagnostic checks on the event log and pricing setup.
func RunDoctor() {
	ui.ShowHeader("Checking subcost setup")
	fmt.Println()

	failCount := 0

	// 1. Config
	fmt.Println("1. Checking configuration...")
	cfg, err := config.Load()
	if err != nil {
		ui.ShowError("Failed to load config", err)
		cfg = &config.Config{}
		failCount++
	} else {
		if _, statErr := os.Stat(config.ConfigPath); statErr == nil {
			ui.ShowSuccess("Config loaded: %s", config.ConfigPath)
		} else {
			ui.ShowInfo("No config file, using defaults")
		}
	}
	fmt.Println()

	// 2. Event log
	fmt.Println("2. Checking event log...")
	store, err := events.Open(cfg.DataDirOrDefault())
	if err != nil {
		ui.ShowError("Event log directory unusable", err)
		failCount++
	} else if !ui.CanWriteTo(store.Dir()) {
		ui.ShowError(fmt.Sprintf("Event log directory not writable: %s", store.Dir()), nil)
		failCount++
	} else {
		ui.ShowSuccess("Event log directory writable: %s", store.Dir())

		starts, _ := store.ReadStarts()
		completions, _ := store.ReadCompletions()
		ui.ShowInfo("%d start event(s), %d completion event(s)", len(starts), len(completions))

		known := make(map[string]bool, len(starts))
		for _, s := range starts {
			known[s.AgentID] = true
		}
		orphans := 0
		for _, c := range completions {
			if !known[c.AgentID] {
				orphans++
			}
		}
		if orphans > 0 {
			ui.ShowWarning("%d completion(s) have no matching start event (reported as agent type \"unknown\")", orphans)
		}
	}
	fmt.Println()

	// 3. Pricing table
	fmt.Println("3. Checking pricing table...")
	table, err := cfg.PricingTable()
	if err != nil {
		ui.ShowError("Pricing table invalid", err)
		failCount++
	} else {
		ui.ShowSuccess("Pricing table valid: version %s, %d tier(s)", table.Version, len(table.Tiers))
		if _, statErr := os.Stat(cfg.PricingFileOrDefault()); os.IsNotExist(statErr) {
			ui.ShowInfo("Using built-in rates; override with %s", cfg.PricingFileOrDefault())
		}
	}
	fmt.Println()

	if failCount > 0 {
		ui.ShowError(fmt.Sprintf("%d check(s) failed", failCount), nil)
		os.Exit(1)
	}
	ui.ShowSuccess("All checks passed")
}
