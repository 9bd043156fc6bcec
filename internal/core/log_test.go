package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBoundEvictsOldest(t *testing.T) {
	l := newEventLog(100)

	for i := 0; i < 150; i++ {
		l.append(LogEntry{Type: LogTypeSystem, Message: fmt.Sprintf("entry-%d", i)})
	}

	entries := l.snapshot()
	require.Len(t, entries, 100)

	// Newest first: entry-149 down to entry-50.
	assert.Equal(t, "entry-149", entries[0].Message)
	assert.Equal(t, "entry-50", entries[99].Message)
}

func TestLogNewestFirst(t *testing.T) {
	l := newEventLog(10)

	l.append(LogEntry{Type: LogTypeQueued, Message: "first"})
	l.append(LogEntry{Type: LogTypeProcessing, Message: "second"})

	entries := l.snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "first", entries[1].Message)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestLogSnapshotIsCopy(t *testing.T) {
	l := newEventLog(10)
	l.append(LogEntry{Type: LogTypeSystem, Message: "original"})

	snap := l.snapshot()
	snap[0].Message = "mutated"

	assert.Equal(t, "original", l.snapshot()[0].Message)
}
