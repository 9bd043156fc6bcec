package core

import (
	"sync"
	"time"
)

type LogType string

const (
	LogTypeQueued     LogType = "queued"
	LogTypeProcessing LogType = "processing"
	LogTypeCompleted  LogType = "completed"
	LogTypeFailed     LogType = "failed"
	LogTypeRemoved    LogType = "removed"
	LogTypeSystem     LogType = "system"
)

type LogEntry struct {
	JobID     string    `json:"job_id,omitempty"`
	Type      LogType   `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// eventLog is a bounded, newest-first record of queue events. Appending
// beyond the bound evicts the oldest entries.
type eventLog struct {
	mu      sync.Mutex
	max     int
	entries []LogEntry
}

func newEventLog(max int) *eventLog {
	if max < 1 {
		max = 100
	}
	return &eventLog{max: max}
}

func (l *eventLog) append(entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]LogEntry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

func (l *eventLog) snapshot() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
