package render

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// QueuedJob is a request held by a MemoryQueue.
type QueuedJob struct {
	ID      string
	Request Request
}

// MemoryQueue accepts every request without rendering anything. It backs
// dry runs and tests.
type MemoryQueue struct {
	mu   sync.Mutex
	jobs []QueuedJob
}

// NewMemoryQueue returns an empty queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

// AddJob records req under a new id.
func (q *MemoryQueue) AddJob(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.NewString()
	q.jobs = append(q.jobs, QueuedJob{ID: id, Request: req})
	return id, nil
}

// Jobs returns a copy of the queued jobs in submission order.
func (q *MemoryQueue) Jobs() []QueuedJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]QueuedJob, len(q.jobs))
	copy(out, q.jobs)
	return out
}
