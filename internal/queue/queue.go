// Package queue hands scoring jobs from the intake path to the scoring
// worker so application writes never wait on the AI service.
package queue

import "context"

// ScoringJob is the message enqueued once per stored application.
type ScoringJob struct {
	ApplicationID int `json:"application_id"`
}

// Publisher is the side the intake handlers see.
type Publisher interface {
	Publish(ctx context.Context, job ScoringJob) error
}

// Handler consumes one job. Errors are the handler's to log; the queue
// does not retry (the rescore scheduler re-queues unscored applications).
type Handler func(job ScoringJob)
