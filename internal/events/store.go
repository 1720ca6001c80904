package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	startsFileName      = "starts.jsonl"
	completionsFileName = "completions.jsonl"
)

// Store is the append-only lifecycle event log: one JSONL file per event
// kind under a single directory. Records are never updated or deleted.
type Store struct {
	dir string
}

// Open prepares the event log directory. An uncreatable directory is a
// process-level configuration error, not something a report can degrade
// around.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create event log dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes under.
func (s *Store) Dir() string {
	return s.dir
}

// AppendStart appends a task-start event.
func (s *Store) AppendStart(e TaskStart) error {
	return s.append(startsFileName, e)
}

// AppendCompletion appends a task-completion event.
func (s *Store) AppendCompletion(e TaskCompletion) error {
	return s.append(completionsFileName, e)
}

// append writes one record as a single line. The whole line goes out in one
// Write call on an O_APPEND handle, so completions firing concurrently never
// interleave inside a line and a crash leaves at most a truncated tail that
// readers skip.
func (s *Store) append(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ReadStarts returns all task-start events in append order.
func (s *Store) ReadStarts() ([]TaskStart, error) {
	var out []TaskStart
	err := s.scan(startsFileName, func(line []byte) {
		var e TaskStart
		if json.Unmarshal(line, &e) == nil && e.AgentID != "" {
			out = append(out, e)
		}
	})
	return out, err
}

// ReadCompletions returns all task-completion events in append order.
func (s *Store) ReadCompletions() ([]TaskCompletion, error) {
	var out []TaskCompletion
	err := s.scan(completionsFileName, func(line []byte) {
		var e TaskCompletion
		if json.Unmarshal(line, &e) == nil && e.AgentID != "" {
			out = append(out, e)
		}
	})
	return out, err
}

// scan walks a log line by line in append order. A missing file is an empty
// log. Lines that fail to parse, including a half-written tail from a writer
// we raced, are skipped; an event without an agent id has nothing to
// correlate against and is skipped too.
func (s *Store) scan(name string, fn func(line []byte)) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		fn(line)
	}
	return nil
}
