package core

import (
	"fmt"
	"log/slog"
	"sync"
)

// DeviceLookup resolves the configured default output device. It does
// not verify physical connectivity.
type DeviceLookup interface {
	DefaultDevice() (DeviceRef, bool)
}

// Renderer performs the actual device I/O for one job.
type Renderer interface {
	Render(job *Job, device DeviceRef) error
}

// Dispatcher is the sole consumer of the queue. Jobs are processed
// strictly in enqueue order, one at a time; serialized access to the
// single physical device is structural, not enforced around the I/O.
type Dispatcher struct {
	queue    *jobQueue
	log      *eventLog
	devices  DeviceLookup
	renderer Renderer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

func newDispatcher(queue *jobQueue, log *eventLog, devices DeviceLookup, renderer Renderer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:    queue,
		log:      log,
		devices:  devices,
		renderer: renderer,
		logger:   logger,
	}
}

// trigger starts the drain loop if it is not already running. Safe to
// call from concurrent submitters; at most one loop is ever active.
func (d *Dispatcher) trigger() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	go d.drain()
}

func (d *Dispatcher) drain() {
	for {
		job := d.queue.peekHead()
		if job == nil {
			d.mu.Lock()
			// Recheck under the lock: a submit racing the shutdown saw
			// running=true and must not be stranded.
			if d.queue.length() > 0 {
				d.mu.Unlock()
				continue
			}
			d.running = false
			d.mu.Unlock()
			return
		}

		d.process(job)

		// Remove by id, not by position: the job may have been removed
		// from the visible list while its render was in flight, and a
		// blind head pop would then drop the next pending job.
		d.queue.removeByID(job.ID)
	}
}

func (d *Dispatcher) process(job *Job) {
	d.queue.setProcessing(job.ID)
	d.log.append(LogEntry{
		JobID:   job.ID,
		Type:    LogTypeProcessing,
		Message: fmt.Sprintf("Processing job: %s", job.Kind),
	})
	d.logger.Debug("processing job", "job_id", job.ID, "kind", string(job.Kind))

	device, ok := d.devices.DefaultDevice()
	if !ok {
		d.fail(job, "no printer selected")
		return
	}

	if err := d.renderer.Render(job, device); err != nil {
		d.fail(job, err.Error())
		return
	}

	d.queue.setCompleted(job)
	d.log.append(LogEntry{
		JobID:   job.ID,
		Type:    LogTypeCompleted,
		Message: fmt.Sprintf("Job completed: %s", job.Kind),
	})
	d.logger.Info("job completed", "job_id", job.ID, "kind", string(job.Kind))
}

// fail stamps the terminal failure on the job and records it. Failures
// are contained per job; the drain loop moves on to the next one.
func (d *Dispatcher) fail(job *Job, errMsg string) {
	d.queue.setFailed(job, errMsg)
	d.log.append(LogEntry{
		JobID:   job.ID,
		Type:    LogTypeFailed,
		Message: fmt.Sprintf("Job failed: %s", errMsg),
		Error:   errMsg,
	})
	d.logger.Warn("job failed", "job_id", job.ID, "kind", string(job.Kind), "error", errMsg)
}
