package handlers

import (
	"context"

	"wadhifa/models"
)

type StorageInterface interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id int) (*models.Job, error)
	GetJobs(ctx context.Context, status models.PostingStatus, owner string) ([]models.Job, error)

	CreateTender(ctx context.Context, tender *models.Tender) error
	GetTender(ctx context.Context, id int) (*models.Tender, error)
	GetTenders(ctx context.Context, status models.PostingStatus, owner string) ([]models.Tender, error)

	ApprovePosting(ctx context.Context, kind models.PostingKind, id int) error
	RejectPosting(ctx context.Context, kind models.PostingKind, id int) error

	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplicationsForJob(ctx context.Context, jobID int) ([]models.Application, error)
	SetApplicationStatus(ctx context.Context, id int, to models.SubmissionStatus) error

	CreateProposal(ctx context.Context, p *models.Proposal) error

	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
}
