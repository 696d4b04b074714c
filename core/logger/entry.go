package logger

import "time"

// LogEntry is a single recorded event. Exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	Line       *Line       `json:"line,omitempty"`
	JobStarted *JobStarted `json:"job_started,omitempty"`
	JobDone    *JobDone    `json:"job_done,omitempty"`
	Error      *Error      `json:"error,omitempty"`
}

// Time returns the time the entry was recorded.
func (le *LogEntry) Time() time.Time {
	return time.UnixMicro(le.TimestampMicros)
}

// LogType is an event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// Line is a line read by the interpreter.
type Line struct {
	Text string `json:"text"`
}

// JobStarted is a background job being launched.
type JobStarted struct {
	Pid     int      `json:"pid"`
	Command []string `json:"command"`
}

// JobDone is a background job's process exiting.
type JobDone struct {
	Pid int `json:"pid"`
}

// Error is a line that failed to parse or evaluate.
type Error struct {
	Line    string `json:"line"`
	Message string `json:"message"`
}

func (e *Line) setOn(le *LogEntry)       { le.Line = e }
func (e *JobStarted) setOn(le *LogEntry) { le.JobStarted = e }
func (e *JobDone) setOn(le *LogEntry)    { le.JobDone = e }
func (e *Error) setOn(le *LogEntry)      { le.Error = e }
