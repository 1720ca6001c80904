package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"subcost/internal/correlate"
	"subcost/internal/pricing"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	costStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

// Render writes a window of accounting records as a terminal report, most
// recent first. With styled=false the same layout goes out without ANSI
// sequences, for pipes and logs.
func Render(w io.Writer, records []correlate.Record, styled bool) {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	title := fmt.Sprintf("Recent subagent tasks (%d)", len(records))
	fmt.Fprintf(w, " %s\n\n", style(titleStyle, title))

	if len(records) == 0 {
		fmt.Fprintf(w, "  %s\n", style(dimStyle, "No completed tasks recorded yet."))
		return
	}

	var totalCost pricing.Amount
	var totalTokens int64
	missing := 0

	for _, r := range records {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			r.CompletedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%-16s", r.AgentType),
			style(costStyle, r.Cost.String()))

		if r.TranscriptStatus == correlate.StatusMissing {
			fmt.Fprintf(w, "    %s\n", style(missingStyle, "transcript missing — no usage data"))
			missing++
		} else {
			fmt.Fprintf(w, "    %s  in %s  out %s  cache-w %s  cache-r %s\n",
				r.Usage.Model,
				formatTokens(r.Usage.InputTokens),
				formatTokens(r.Usage.OutputTokens),
				formatTokens(r.Usage.CacheCreationTokens),
				formatTokens(r.Usage.CacheReadTokens))
			totalTokens += r.Usage.InputTokens + r.Usage.OutputTokens +
				r.Usage.CacheCreationTokens + r.Usage.CacheReadTokens
		}

		if r.Description != "" {
			fmt.Fprintf(w, "    %s\n", style(dimStyle, r.Description))
		}
		totalCost += r.Cost
		fmt.Fprintln(w)
	}

	summary := fmt.Sprintf("Total: %s across %d task(s), %s tokens", totalCost, len(records), formatTokens(totalTokens))
	if missing > 0 {
		summary += fmt.Sprintf(", %d without transcript", missing)
	}
	fmt.Fprintf(w, "  %s\n", style(costStyle, summary))
}

// formatTokens formats large token counts with thousand separators.
func formatTokens(n int64) string {
	s := fmt.Sprintf("%d", n)
	parts := []string{}
	for i := len(s); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{s[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}
