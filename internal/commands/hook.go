package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"subcost/internal/events"
	"subcost/internal/output"
	"subcost/internal/transcript"
)

// hookPayload is the JSON the agent runtime pipes to stdin when a lifecycle
// hook fires. Only the fields the event log needs are parsed; unknown fields
// in the payload are ignored.
type hookPayload struct {
	AgentID        string `json:"agent_id"`
	AgentType      string `json:"agent_type"`
	TranscriptPath string `json:"transcript_path"`
	Description    string `json:"description"`
}

// RunHookStarted ingests a task-start notification from stdin. Hooks run
// inside the agent loop, so success is silent.
func RunHookStarted() {
	store, data := readHookInput()
	if err := ingestStart(store, data, time.Now().UTC()); err != nil {
		output.PrintError(err)
	}
}

// RunHookStopped ingests a task-completion notification from stdin.
func RunHookStopped() {
	store, data := readHookInput()
	if err := ingestCompletion(store, data, time.Now().UTC()); err != nil {
		output.PrintError(err)
	}
}

// readHookInput opens the event store and drains stdin. Both failures are
// process-level problems, not per-event ones.
func readHookInput() (*events.Store, []byte) {
	store, err := openStore()
	if err != nil {
		output.PrintError(err)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		output.PrintError(fmt.Errorf("read hook payload: %w", err))
	}
	return store, data
}

// ingestStart appends a task-start event built from a hook payload.
func ingestStart(store *events.Store, data []byte, now time.Time) error {
	p, err := parsePayload(data)
	if err != nil {
		return err
	}
	return store.AppendStart(events.TaskStart{
		AgentID:   p.AgentID,
		AgentType: p.AgentType,
		LoggedAt:  now,
	})
}

// ingestCompletion appends a task-completion event built from a hook
// payload. Transcript line and byte counts are measured here, while the file
// is still most likely to exist.
func ingestCompletion(store *events.Store, data []byte, now time.Time) error {
	p, err := parsePayload(data)
	if err != nil {
		return err
	}
	lines, bytes := measureTranscript(p.TranscriptPath)
	return store.AppendCompletion(events.TaskCompletion{
		AgentID:         p.AgentID,
		TranscriptPath:  p.TranscriptPath,
		LoggedAt:        now,
		TranscriptLines: lines,
		TranscriptBytes: bytes,
		Description:     p.Description,
	})
}

func parsePayload(data []byte) (hookPayload, error) {
	var p hookPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse hook payload: %w", err)
	}
	if p.AgentID == "" {
		return p, fmt.Errorf("hook payload has no agent_id")
	}
	return p, nil
}

// measureTranscript returns the transcript's line and byte counts, zero when
// the file is absent. The counts are advisory metadata on the completion
// event; the report re-reads the transcript itself.
func measureTranscript(path string) (int, int64) {
	if !transcript.Exists(path) {
		return 0, 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, info.Size()
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines++
	}
	return lines, info.Size()
}
