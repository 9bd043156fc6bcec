package core

import (
	"fmt"
	"log/slog"
)

// Spooler is the public surface producers use to submit and inspect
// print work. It owns the queue, the event log and the dispatcher;
// construct one at process start and pass it by reference.
type Spooler struct {
	queue      *jobQueue
	log        *eventLog
	dispatcher *Dispatcher
	logger     *slog.Logger
}

type SpoolerOptions struct {
	// MaxLogs bounds the event log; entries beyond it are evicted
	// oldest first. Defaults to 100.
	MaxLogs  int
	Devices  DeviceLookup
	Renderer Renderer
	Logger   *slog.Logger
}

func NewSpooler(opts SpoolerOptions) *Spooler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	queue := newJobQueue()
	log := newEventLog(opts.MaxLogs)

	return &Spooler{
		queue:      queue,
		log:        log,
		dispatcher: newDispatcher(queue, log, opts.Devices, opts.Renderer, logger),
		logger:     logger,
	}
}

type QueueStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Total      int `json:"total"`
}

// Submit enqueues the job and kicks the dispatcher if it is idle. It
// never waits on an in-flight render; the returned copy carries the
// assigned id and pending status.
func (s *Spooler) Submit(job *Job) Job {
	created := s.queue.enqueue(job)
	s.log.append(LogEntry{
		JobID:   created.ID,
		Type:    LogTypeQueued,
		Message: fmt.Sprintf("Job added to queue: %s", created.Kind),
	})
	s.logger.Debug("job queued", "job_id", created.ID, "kind", string(created.Kind))

	s.dispatcher.trigger()
	return created
}

// ListPending returns the queued and processing jobs in order.
func (s *Spooler) ListPending() []Job {
	return s.queue.snapshot()
}

// ListLogs returns the event log, newest first.
func (s *Spooler) ListLogs() []LogEntry {
	return s.log.snapshot()
}

// ClearAll empties the queue and returns the number of jobs removed.
func (s *Spooler) ClearAll() int {
	count := s.queue.clear()
	s.log.append(LogEntry{
		Type:    LogTypeSystem,
		Message: fmt.Sprintf("Queue cleared (%d jobs removed)", count),
	})
	s.logger.Info("queue cleared", "removed", count)
	return count
}

// Remove takes the job with the given id out of the queue. Removing the
// currently processing job only hides it from the pending list; the
// render already in flight still completes or fails on its own.
func (s *Spooler) Remove(id string) bool {
	removed := s.queue.removeByID(id)
	if removed {
		s.log.append(LogEntry{
			JobID:   id,
			Type:    LogTypeRemoved,
			Message: fmt.Sprintf("Job %s removed from queue", id),
		})
		s.logger.Info("job removed", "job_id", id)
	}
	return removed
}

// Stats reports queue occupancy for the status endpoint.
func (s *Spooler) Stats() QueueStats {
	stats := QueueStats{}
	for _, job := range s.queue.snapshot() {
		stats.Total++
		switch job.Status {
		case JobStatusPending:
			stats.Pending++
		case JobStatusProcessing:
			stats.Processing++
		}
	}
	return stats
}
