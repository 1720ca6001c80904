package events

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestAppendReadRoundtrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	start := TaskStart{
		AgentID:   "a1",
		AgentType: "Explore",
		LoggedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
	if err := store.AppendStart(start); err != nil {
		t.Fatalf("AppendStart: %v", err)
	}

	completion := TaskCompletion{
		AgentID:         "a1",
		TranscriptPath:  "/tmp/a1.jsonl",
		LoggedAt:        time.Date(2026, 8, 20, 10, 5, 0, 0, time.UTC),
		TranscriptLines: 42,
		TranscriptBytes: 1234,
		Description:     "explore the repo",
	}
	if err := store.AppendCompletion(completion); err != nil {
		t.Fatalf("AppendCompletion: %v", err)
	}

	starts, err := store.ReadStarts()
	if err != nil {
		t.Fatalf("ReadStarts: %v", err)
	}
	if len(starts) != 1 {
		t.Fatalf("got %d starts, want 1", len(starts))
	}
	if s := starts[0]; s.AgentID != start.AgentID || s.AgentType != start.AgentType || !s.LoggedAt.Equal(start.LoggedAt) {
		t.Errorf("ReadStarts = %+v, want %+v", s, start)
	}

	completions, err := store.ReadCompletions()
	if err != nil {
		t.Fatalf("ReadCompletions: %v", err)
	}
	if len(completions) != 1 {
		t.Fatalf("got %d completions, want 1", len(completions))
	}
	c := completions[0]
	if c.AgentID != completion.AgentID || c.TranscriptPath != completion.TranscriptPath ||
		!c.LoggedAt.Equal(completion.LoggedAt) || c.TranscriptLines != completion.TranscriptLines ||
		c.TranscriptBytes != completion.TranscriptBytes || c.Description != completion.Description {
		t.Errorf("ReadCompletions = %+v, want %+v", c, completion)
	}
}

func TestReadEmptyStore(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	starts, err := store.ReadStarts()
	if err != nil {
		t.Fatalf("ReadStarts on empty store: %v", err)
	}
	if len(starts) != 0 {
		t.Errorf("expected no starts, got %d", len(starts))
	}
}

func TestReadPreservesAppendOrder(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ids := []string{"a1", "a2", "a3", "a4"}
	for _, id := range ids {
		if err := store.AppendStart(TaskStart{AgentID: id, AgentType: "general-purpose", LoggedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("AppendStart(%s): %v", id, err)
		}
	}

	starts, err := store.ReadStarts()
	if err != nil {
		t.Fatalf("ReadStarts: %v", err)
	}
	if len(starts) != len(ids) {
		t.Fatalf("got %d starts, want %d", len(starts), len(ids))
	}
	for i, id := range ids {
		if starts[i].AgentID != id {
			t.Errorf("starts[%d].AgentID = %s, want %s", i, starts[i].AgentID, id)
		}
	}
}

func TestMalformedLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := store.AppendCompletion(TaskCompletion{AgentID: "good-1", LoggedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("AppendCompletion: %v", err)
	}

	// Inject garbage, an empty line, and a record without an agent id
	// between two valid records.
	f, err := os.OpenFile(filepath.Join(dir, completionsFileName), os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("not json at all\n\n{\"loggedAt\":\"2026-08-20T10:00:00Z\"}\n"); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	f.Close()

	if err := store.AppendCompletion(TaskCompletion{AgentID: "good-2", LoggedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("AppendCompletion: %v", err)
	}

	completions, err := store.ReadCompletions()
	if err != nil {
		t.Fatalf("ReadCompletions: %v", err)
	}
	if len(completions) != 2 {
		t.Fatalf("got %d completions, want 2", len(completions))
	}
	if completions[0].AgentID != "good-1" || completions[1].AgentID != "good-2" {
		t.Errorf("got agent ids %s, %s", completions[0].AgentID, completions[1].AgentID)
	}
}

func TestTruncatedTailLineSkipped(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := store.AppendStart(TaskStart{AgentID: "a1", AgentType: "Explore", LoggedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("AppendStart: %v", err)
	}

	// Simulate a crash mid-append: a partial record with no trailing newline.
	f, err := os.OpenFile(filepath.Join(dir, startsFileName), os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString(`{"agentId":"a2","agentTy`); err != nil {
		t.Fatalf("write partial: %v", err)
	}
	f.Close()

	starts, err := store.ReadStarts()
	if err != nil {
		t.Fatalf("ReadStarts: %v", err)
	}
	if len(starts) != 1 || starts[0].AgentID != "a1" {
		t.Errorf("got %+v, want only a1", starts)
	}
}

func TestConcurrentAppends(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := TaskCompletion{
				AgentID:     "agent-" + string(rune('a'+i%26)) + "-" + string(rune('0'+i%10)),
				LoggedAt:    time.Now().UTC(),
				Description: "concurrent completion",
			}
			if err := store.AppendCompletion(e); err != nil {
				t.Errorf("AppendCompletion: %v", err)
			}
		}(i)
	}
	wg.Wait()

	completions, err := store.ReadCompletions()
	if err != nil {
		t.Fatalf("ReadCompletions: %v", err)
	}
	if len(completions) != n {
		t.Errorf("got %d completions, want %d (interleaved or lost writes)", len(completions), n)
	}
}
