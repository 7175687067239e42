// Package scheduler wires up the cron job that re-queues applications
// still lacking a score, covering scoring-service outages and dropped
// in-process jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"wadhifa/internal/queue"
)

// Store is the slice of storage the scheduler needs.
type Store interface {
	GetUnscoredApplicationIDs(ctx context.Context, cutoff time.Time) ([]int, error)
}

// Scheduler wraps robfig/cron and manages the rescore loop.
type Scheduler struct {
	cron  *cron.Cron
	store Store
	pub   queue.Publisher
	log   *logrus.Logger
	spec  string // cron spec, e.g. "@every 10m"
	grace time.Duration
}

// New creates a Scheduler firing every intervalMinutes minutes. Only
// applications older than the grace window are re-queued, so a job that
// is merely still in flight is not duplicated.
func New(store Store, pub queue.Publisher, log *logrus.Logger, intervalMinutes int) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
		pub:   pub,
		log:   log,
		spec:  fmt.Sprintf("@every %dm", intervalMinutes),
		grace: 2 * time.Minute,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRescore(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.WithField("spec", s.spec).Info("rescore scheduler started")
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runRescore(ctx context.Context) {
	cutoff := time.Now().Add(-s.grace)
	ids, err := s.store.GetUnscoredApplicationIDs(ctx, cutoff)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("rescore: listing unscored applications failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	s.log.WithField("count", len(ids)).Info("rescore: re-queuing unscored applications")
	for _, id := range ids {
		if err := s.pub.Publish(ctx, queue.ScoringJob{ApplicationID: id}); err != nil {
			s.log.WithFields(logrus.Fields{
				"application_id": id,
				"error":          err.Error(),
			}).Warn("rescore: publish failed")
		}
	}
}
