package events

import "time"

// TaskStart marks the dispatch of a subagent task. Written once when the
// agent runtime spawns the task, never updated.
type TaskStart struct {
	AgentID   string    `json:"agentId"`
	AgentType string    `json:"agentType"`
	LoggedAt  time.Time `json:"loggedAt"`
}

// TaskCompletion marks the end of a subagent task. TranscriptPath may be
// empty: the runtime does not always hand the transcript location to the
// completion notification, and the transcript file itself may already be
// gone by the time a report runs.
type TaskCompletion struct {
	AgentID         string    `json:"agentId"`
	TranscriptPath  string    `json:"transcriptPath,omitempty"`
	LoggedAt        time.Time `json:"loggedAt"`
	TranscriptLines int       `json:"transcriptLines,omitempty"`
	TranscriptBytes int64     `json:"transcriptBytes,omitempty"`
	Description     string    `json:"description,omitempty"`
}
