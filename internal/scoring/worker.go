package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"wadhifa/internal/apperrors"
	"wadhifa/models"
)

// Store is the slice of storage the worker needs.
type Store interface {
	GetApplication(ctx context.Context, id int) (*models.Application, error)
	GetJob(ctx context.Context, id int) (*models.Job, error)
	SetApplicationScore(ctx context.Context, id int, score int, analysis string) error
}

// Worker resolves one queued scoring job: load the application and its
// job, ask the scorer, attach the result. Scoring failures are logged
// and swallowed; the application keeps its null score and the rescore
// scheduler will try again.
type Worker struct {
	store   Store
	scorer  Scorer
	log     *logrus.Logger
	timeout time.Duration
}

func NewWorker(store Store, scorer Scorer, log *logrus.Logger, timeout time.Duration) *Worker {
	return &Worker{store: store, scorer: scorer, log: log, timeout: timeout}
}

// Process scores the application with the given id. The returned error
// is for the caller's bookkeeping only; by the time Process returns, the
// submission itself has already succeeded from the applicant's point of
// view.
func (w *Worker) Process(ctx context.Context, applicationID int) error {
	app, err := w.store.GetApplication(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("load application %d: %w", applicationID, err)
	}
	if app.AIMatchScore != nil {
		// Already scored; re-queued jobs are no-ops.
		return nil
	}

	job, err := w.store.GetJob(ctx, app.JobID)
	if err != nil {
		return fmt.Errorf("load job %d: %w", app.JobID, err)
	}

	scoreCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := w.scorer.Score(scoreCtx, Request{
		Resume:          app.ResumeURL,
		CoverLetter:     app.CoverLetter,
		JobDescription:  job.Description,
		JobRequirements: job.Requirements,
	})
	if err != nil {
		w.log.WithFields(logrus.Fields{
			"application_id": applicationID,
			"job_id":         app.JobID,
			"error":          err.Error(),
		}).Warn("scoring unavailable, application keeps null score")
		return fmt.Errorf("%w: %v", apperrors.ErrScoringUnavailable, err)
	}

	if err := w.store.SetApplicationScore(ctx, applicationID, res.Score, res.Analysis); err != nil {
		return fmt.Errorf("attach score to application %d: %w", applicationID, err)
	}

	w.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"score":          res.Score,
	}).Info("application scored")
	return nil
}
