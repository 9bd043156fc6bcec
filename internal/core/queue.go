package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// jobQueue holds the ordered set of not-yet-finished jobs. The head is
// the next job to process. All access goes through the mutex so that a
// snapshot never observes the queue mid-mutation.
type jobQueue struct {
	mu   sync.Mutex
	jobs []*Job
}

func newJobQueue() *jobQueue {
	return &jobQueue{}
}

// enqueue stamps the job with a fresh id, pending status and creation
// time, and appends it to the back. The queue trusts its input shape;
// validation is the producer's responsibility. The returned value is a
// copy taken before any consumer can touch the job.
func (q *jobQueue) enqueue(job *Job) Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	job.ID = uuid.NewString()
	job.Status = JobStatusPending
	job.CreatedAt = time.Now()

	q.jobs = append(q.jobs, job)
	return *job
}

func (q *jobQueue) peekHead() *Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return nil
	}
	return q.jobs[0]
}

// removeByID removes the job with the given id wherever it sits.
// Safe to call whether the job is pending, processing or absent.
func (q *jobQueue) removeByID(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, job := range q.jobs {
		if job.ID == id {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// removeHead drops the current head unconditionally.
func (q *jobQueue) removeHead() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) > 0 {
		q.jobs = q.jobs[1:]
	}
}

func (q *jobQueue) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := len(q.jobs)
	q.jobs = nil
	return count
}

func (q *jobQueue) length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// snapshot returns defensive copies for read-only reporting.
func (q *jobQueue) snapshot() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Job, 0, len(q.jobs))
	for _, job := range q.jobs {
		out = append(out, *job)
	}
	return out
}

// setProcessing marks the job with the given id as processing. Status
// writes happen under the queue mutex so snapshots stay consistent.
func (q *jobQueue) setProcessing(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, job := range q.jobs {
		if job.ID == id {
			job.Status = JobStatusProcessing
			return
		}
	}
}

// setCompleted stamps the terminal success state on the job, whether or
// not it is still listed.
func (q *jobQueue) setCompleted(job *Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	job.Status = JobStatusCompleted
	job.CompletedAt = &now
}

// setFailed stamps the terminal failure state on the job.
func (q *jobQueue) setFailed(job *Job, errMsg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job.Status = JobStatusFailed
	job.ErrorMessage = errMsg
}
