package correlate

import (
	"sort"
	"time"

	"subcost/internal/events"
	"subcost/internal/pricing"
	"subcost/internal/transcript"
	"subcost/internal/usage"
)

// Transcript status values for a Record.
const (
	StatusFound   = "found"
	StatusMissing = "missing"
)

// UnknownAgentType is reported when a completion has no matching start
// event, which happens when starts are lost or predate tracking.
const UnknownAgentType = "unknown"

// Record is the unified accounting view of one completed subagent task:
// lifecycle events joined with transcript-derived usage and its cost.
type Record struct {
	AgentID          string         `json:"agentId"`
	AgentType        string         `json:"agentType"`
	Description      string         `json:"description,omitempty"`
	CompletedAt      time.Time      `json:"completedAt"`
	Usage            usage.Summary  `json:"usage"`
	Cost             pricing.Amount `json:"cost"`
	TranscriptStatus string         `json:"transcriptStatus"`
}

// Window joins the n most recently logged completions with their start
// events and transcript usage, most recent first. n <= 0 means no bound.
//
// The join is a pure projection over the event logs: nothing is mutated, and
// repeat runs over unchanged logs and transcripts produce identical output.
func Window(completions []events.TaskCompletion, starts []events.TaskStart, table *pricing.Table, n int) []Record {
	startsByAgent := make(map[string]events.TaskStart, len(starts))
	for _, s := range starts {
		// Later start wins on a reused agent id, pairing each completion
		// with the freshest dispatch.
		if prev, ok := startsByAgent[s.AgentID]; !ok || s.LoggedAt.After(prev.LoggedAt) {
			startsByAgent[s.AgentID] = s
		}
	}

	// Reverse into file order descending, then stable-sort by logged time so
	// equal timestamps keep the later append first. The order is fully
	// determined by log contents, which keeps repeat runs byte-identical.
	selected := make([]events.TaskCompletion, 0, len(completions))
	for i := len(completions) - 1; i >= 0; i-- {
		selected = append(selected, completions[i])
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].LoggedAt.After(selected[j].LoggedAt)
	})
	if n > 0 && len(selected) > n {
		selected = selected[:n]
	}

	records := make([]Record, 0, len(selected))
	for _, c := range selected {
		records = append(records, build(c, startsByAgent, table))
	}
	return records
}

// build produces the accounting record for one completion. Per-record
// problems degrade fields instead of dropping the record: a task whose
// transcript is gone still shows up, with zero usage and zero cost, because
// visibility of the task is the point.
func build(c events.TaskCompletion, starts map[string]events.TaskStart, table *pricing.Table) Record {
	rec := Record{
		AgentID:          c.AgentID,
		AgentType:        UnknownAgentType,
		Description:      c.Description,
		CompletedAt:      c.LoggedAt,
		Usage:            usage.Zero(),
		TranscriptStatus: StatusMissing,
	}
	if s, ok := starts[c.AgentID]; ok {
		rec.AgentType = s.AgentType
	}
	if !transcript.Exists(c.TranscriptPath) {
		return rec
	}

	rec.TranscriptStatus = StatusFound
	rec.Usage = usage.Summarize(transcript.Read(c.TranscriptPath))
	rec.Cost = table.Cost(rec.Usage.Model, rec.Usage)
	return rec
}
