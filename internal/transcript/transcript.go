package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"time"
)

// Record is a single line of a subagent transcript. Transcripts are written
// by the agent runtime, not by us, and most lines are control records we
// have no use for; only the usage-bearing shape is parsed.
type Record struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Message   *Message  `json:"message,omitempty"`
}

// Message is the assistant-message part of a transcript record.
type Message struct {
	Model string `json:"model"`
	Usage *Usage `json:"usage,omitempty"`
}

// Usage holds token counts attached to a record that reflects a model
// invocation. Any field may be absent and counts as zero.
type Usage struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadTokens     int64 `json:"cache_read_input_tokens"`
}

// HasUsage reports whether the record carries a usage payload.
func (r Record) HasUsage() bool {
	return r.Message != nil && r.Message.Usage != nil
}

// Exists reports whether a transcript file is present and readable. An empty
// path means the completion event never carried a transcript reference. A
// file we cannot open counts as missing, same as one that was deleted.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

// Read parses a transcript file line by line. Each line is parsed
// independently and lines that are not valid records are skipped. A missing
// or unreadable file yields an empty slice: transcripts are deleted out from
// under us routinely, and that is an expected outcome, not an error.
func Read(path string) []Record {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB buffer for long lines
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}
