package commands

import (
	"fmt"

	"subcost/internal/config"
	"subcost/internal/output"
	"subcost/internal/ui"
)

// RunPrices prints the active pricing table so operators can verify which
// rate snapshot reports are billed against.
func RunPrices() {
	cfg, err := config.Load()
	if err != nil {
		output.PrintError(err)
		return
	}
	table, err := cfg.PricingTable()
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(table, func() {
		ui.ShowHeader(fmt.Sprintf("Pricing table %s", table.Version))
		fmt.Println()
		fmt.Printf("  %-24s %10s %10s %10s %10s\n", "MODEL PATTERN", "INPUT", "OUTPUT", "CACHE-W", "CACHE-R")
		for _, tier := range table.Tiers {
			pattern := tier.Match
			if pattern == "" {
				pattern = "(default)"
			}
			fmt.Printf("  %-24s %10.2f %10.2f %10.2f %10.2f\n",
				pattern, tier.Input, tier.Output, tier.CacheWrite, tier.CacheRead)
		}
		fmt.Println()
		ui.ShowInfo("Rates are USD per million tokens; first matching pattern wins")
	})
}
