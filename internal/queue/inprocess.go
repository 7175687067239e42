package queue

import (
	"context"
	"fmt"
)

// InProcess is the fallback queue when no broker is configured: a
// buffered channel drained by one goroutine. Jobs do not survive a
// restart, which the rescore scheduler compensates for.
type InProcess struct {
	jobs chan ScoringJob
}

func NewInProcess(buffer int) *InProcess {
	return &InProcess{jobs: make(chan ScoringJob, buffer)}
}

// Publish never blocks the intake path: with a full buffer the job is
// dropped and left for the rescore scheduler.
func (q *InProcess) Publish(ctx context.Context, job ScoringJob) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("scoring queue full, job for application %d deferred", job.ApplicationID)
	}
}

// Consume drains jobs with handler on a single goroutine.
func (q *InProcess) Consume(handler Handler) error {
	go func() {
		for job := range q.jobs {
			handler(job)
		}
	}()
	return nil
}

func (q *InProcess) Close() error {
	close(q.jobs)
	return nil
}
