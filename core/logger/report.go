package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Format renders an entry as a single human readable line.
func Format(le *LogEntry) string {
	ts := le.Time().UTC().Format(time.RFC3339)

	var event string
	switch {
	case le.Line != nil:
		event = fmt.Sprintf("line %q", le.Line.Text)
	case le.JobStarted != nil:
		event = fmt.Sprintf("job %d started: %s", le.JobStarted.Pid, strings.Join(le.JobStarted.Command, " "))
	case le.JobDone != nil:
		event = fmt.Sprintf("job %d done", le.JobDone.Pid)
	case le.Error != nil:
		event = fmt.Sprintf("error in %q: %s", le.Error.Line, le.Error.Message)
	default:
		event = "unknown event"
	}

	if le.SessionID == "" {
		return fmt.Sprintf("%s %s", ts, event)
	}
	return fmt.Sprintf("%s [%s] %s", ts, le.SessionID, event)
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries int        `json:"log_entries"`
	Sessions   StrCounter `json:"sessions"`
	Lines      int        `json:"lines"`
	Programs   StrCounter `json:"programs"`
	Errors     StrCounter `json:"errors"`
	JobsStart  int        `json:"jobs_started"`
	JobsDone   int        `json:"jobs_done"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch {
	case le.Line != nil:
		r.Lines++
	case le.JobStarted != nil:
		r.JobsStart++
		if len(le.JobStarted.Command) > 0 {
			r.Programs.Increment(le.JobStarted.Command[0])
		}
	case le.JobDone != nil:
		r.JobsDone++
	case le.Error != nil:
		r.Errors.Increment(le.Error.Message)
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}
