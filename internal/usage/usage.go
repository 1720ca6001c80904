package usage

import "subcost/internal/transcript"

// UnknownModel is the model identifier used when a transcript carries no
// usage at all, or when a completion has no transcript to read.
const UnknownModel = "unknown"

// Summary is the per-task token rollup derived from one transcript. A task
// is billed against a single model: the first one seen with a usage payload.
type Summary struct {
	Model               string `json:"model"`
	InputTokens         int64  `json:"inputTokens"`
	OutputTokens        int64  `json:"outputTokens"`
	CacheCreationTokens int64  `json:"cacheCreationTokens"`
	CacheReadTokens     int64  `json:"cacheReadTokens"`
}

// Zero returns the summary for a task with no readable transcript.
func Zero() Summary {
	return Summary{Model: UnknownModel}
}

// Summarize folds usage-bearing transcript records into a Summary. Records
// without a usage payload are skipped; token fields absent on a record count
// as zero, so a partial payload still contributes what it has.
func Summarize(records []transcript.Record) Summary {
	s := Zero()
	modelSet := false
	for _, r := range records {
		if !r.HasUsage() {
			continue
		}
		u := r.Message.Usage
		s.InputTokens += u.InputTokens
		s.OutputTokens += u.OutputTokens
		s.CacheCreationTokens += u.CacheCreationTokens
		s.CacheReadTokens += u.CacheReadTokens
		if !modelSet && r.Message.Model != "" {
			s.Model = r.Message.Model
			modelSet = true
		}
	}
	return s
}
