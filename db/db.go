package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"wadhifa/internal/apperrors"
	"wadhifa/internal/moderation"
	"wadhifa/models"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Postings (jobs and tenders share one table, discriminated by kind)

const jobColumns = `id, title, organization, location, category, budget_range,
        description, requirements, contact_email, contact_phone, expires_at,
        status, created_by, created_at`

const tenderColumns = `id, title, organization, reference_number, category, budget_range,
        description, requirements, contact_email, contact_phone, expires_at,
        status, created_by, created_at`

func (s *Storage) CreateJob(ctx context.Context, j *models.Job) error {
	query := `
        INSERT INTO postings
            (kind, title, organization, location, category, budget_range, description,
             requirements, contact_email, contact_phone, expires_at, status, created_by)
        VALUES
            ('job', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', $11)
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		j.Title, j.Company, j.Location, j.JobType, j.SalaryRange, j.Description,
		j.Requirements, j.ContactEmail, j.ContactPhone, j.ExpiresAt, j.CreatedBy).
		Scan(&j.ID, &j.Status, &j.CreatedAt)
}

func (s *Storage) CreateTender(ctx context.Context, t *models.Tender) error {
	query := `
        INSERT INTO postings
            (kind, title, organization, reference_number, category, budget_range, description,
             requirements, contact_email, contact_phone, expires_at, status, created_by)
        VALUES
            ('tender', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', $11)
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		t.Title, t.Organization, t.ReferenceNumber, t.Category, t.BudgetRange, t.Description,
		t.Requirements, t.ContactEmail, t.ContactPhone, t.SubmissionDeadline, t.CreatedBy).
		Scan(&t.ID, &t.Status, &t.CreatedAt)
}

func (s *Storage) GetJob(ctx context.Context, id int) (*models.Job, error) {
	j := &models.Job{}
	query := `SELECT ` + jobColumns + ` FROM postings WHERE id=$1 AND kind='job'`
	if err := s.db.GetContext(ctx, j, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return j, nil
}

func (s *Storage) GetTender(ctx context.Context, id int) (*models.Tender, error) {
	t := &models.Tender{}
	query := `SELECT ` + tenderColumns + ` FROM postings WHERE id=$1 AND kind='tender'`
	if err := s.db.GetContext(ctx, t, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return t, nil
}

// GetJobs returns jobs in insertion order. An empty status or owner
// leaves that filter off; owner filtering happens server-side so callers
// never have to fetch everyone's postings.
func (s *Storage) GetJobs(ctx context.Context, status models.PostingStatus, owner string) ([]models.Job, error) {
	query, args := postingListQuery(jobColumns, models.KindJob, status, owner)
	jobs := []models.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Storage) GetTenders(ctx context.Context, status models.PostingStatus, owner string) ([]models.Tender, error) {
	query, args := postingListQuery(tenderColumns, models.KindTender, status, owner)
	tenders := []models.Tender{}
	if err := s.db.SelectContext(ctx, &tenders, query, args...); err != nil {
		return nil, err
	}
	return tenders, nil
}

func postingListQuery(columns string, kind models.PostingKind, status models.PostingStatus, owner string) (string, []interface{}) {
	query := `SELECT ` + columns + ` FROM postings WHERE kind=$1`
	args := []interface{}{kind}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if owner != "" {
		args = append(args, owner)
		query += fmt.Sprintf(" AND created_by=$%d", len(args))
	}
	query += " ORDER BY id ASC"
	return query, args
}

// ApprovePosting moves a pending posting to active. The WHERE clause is
// the compare-and-set: a posting already resolved by a concurrent admin
// matches zero rows and the call fails instead of overwriting.
func (s *Storage) ApprovePosting(ctx context.Context, kind models.PostingKind, id int) error {
	return s.setPostingStatus(ctx, kind, id, models.PostingActive)
}

// RejectPosting marks a pending posting rejected. The row is kept so the
// posting stays readable; it just never lists as pending or active again.
func (s *Storage) RejectPosting(ctx context.Context, kind models.PostingKind, id int) error {
	return s.setPostingStatus(ctx, kind, id, models.PostingRejected)
}

func (s *Storage) setPostingStatus(ctx context.Context, kind models.PostingKind, id int, to models.PostingStatus) error {
	query := `UPDATE postings SET status=$1 WHERE id=$2 AND kind=$3 AND status='pending'`
	res, err := s.db.ExecContext(ctx, query, to, id, kind)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var status models.PostingStatus
		err := s.db.GetContext(ctx, &status, `SELECT status FROM postings WHERE id=$1 AND kind=$2`, id, kind)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !moderation.CanTransitionPosting(status, to) {
			return fmt.Errorf("posting %d is %s: %w", id, status, apperrors.ErrInvalidState)
		}
		// CAS lost to a concurrent writer between the UPDATE and the
		// lookup; the caller sees it as an invalid transition either way.
		return fmt.Errorf("posting %d: %w", id, apperrors.ErrInvalidState)
	}
	return nil
}

// Applications

func (s *Storage) CreateApplication(ctx context.Context, a *models.Application) error {
	query := `
        INSERT INTO applications
            (job_id, applicant_name, applicant_email, applicant_phone, resume_url, cover_letter, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, 'pending')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		a.JobID, a.ApplicantName, a.ApplicantEmail, a.ApplicantPhone, a.ResumeURL, a.CoverLetter).
		Scan(&a.ID, &a.Status, &a.CreatedAt)
}

func (s *Storage) GetApplication(ctx context.Context, id int) (*models.Application, error) {
	a := &models.Application{}
	query := `
        SELECT a.id, a.job_id, a.applicant_name, a.applicant_email, a.applicant_phone,
               a.resume_url, a.cover_letter, a.ai_match_score, a.ai_analysis, a.status, a.created_at
        FROM applications a
        WHERE a.id=$1`
	if err := s.db.GetContext(ctx, a, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return a, nil
}

// GetApplicationsForJob returns every application against a job with the
// job title and company joined in for the review view. Ordering is left
// to the ranking package.
func (s *Storage) GetApplicationsForJob(ctx context.Context, jobID int) ([]models.Application, error) {
	query := `
        SELECT a.id, a.job_id, a.applicant_name, a.applicant_email, a.applicant_phone,
               a.resume_url, a.cover_letter, a.ai_match_score, a.ai_analysis, a.status, a.created_at,
               p.title AS job_title, p.organization AS company
        FROM applications a
        JOIN postings p ON a.job_id = p.id
        WHERE a.job_id = $1`
	apps := []models.Application{}
	if err := s.db.SelectContext(ctx, &apps, query, jobID); err != nil {
		return nil, err
	}
	return apps, nil
}

// SetApplicationScore attaches the AI result to an application. The
// IS NULL guard makes the fields set-once: a re-queued scoring job for an
// already-scored application is a no-op.
func (s *Storage) SetApplicationScore(ctx context.Context, id int, score int, analysis string) error {
	query := `
        UPDATE applications
        SET ai_match_score=$1, ai_analysis=$2
        WHERE id=$3 AND ai_match_score IS NULL`
	_, err := s.db.ExecContext(ctx, query, score, analysis, id)
	return err
}

// SetApplicationStatus moves a pending application to accepted or
// rejected, with the same compare-and-set shape as postings.
func (s *Storage) SetApplicationStatus(ctx context.Context, id int, to models.SubmissionStatus) error {
	query := `UPDATE applications SET status=$1 WHERE id=$2 AND status='pending'`
	res, err := s.db.ExecContext(ctx, query, to, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var status models.SubmissionStatus
		err := s.db.GetContext(ctx, &status, `SELECT status FROM applications WHERE id=$1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !moderation.CanTransitionSubmission(status, to) {
			return fmt.Errorf("application %d is %s: %w", id, status, apperrors.ErrInvalidState)
		}
		return fmt.Errorf("application %d: %w", id, apperrors.ErrInvalidState)
	}
	return nil
}

// GetUnscoredApplicationIDs lists applications still lacking a score that
// were created at or before cutoff. Used by the rescore scheduler.
func (s *Storage) GetUnscoredApplicationIDs(ctx context.Context, cutoff time.Time) ([]int, error) {
	ids := []int{}
	query := `
        SELECT id FROM applications
        WHERE ai_match_score IS NULL AND created_at <= $1
        ORDER BY id ASC`
	if err := s.db.SelectContext(ctx, &ids, query, cutoff); err != nil {
		return nil, err
	}
	return ids, nil
}

// Proposals

func (s *Storage) CreateProposal(ctx context.Context, p *models.Proposal) error {
	query := `
        INSERT INTO proposals
            (tender_id, company_name, contact_email, contact_phone, proposal_url, status)
        VALUES
            ($1, $2, $3, $4, $5, 'pending')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		p.TenderID, p.CompanyName, p.ContactEmail, p.ContactPhone, p.ProposalURL).
		Scan(&p.ID, &p.Status, &p.CreatedAt)
}

// Admin stats

func (s *Storage) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}
	query := `
        SELECT
            COUNT(*) FILTER (WHERE kind='job')                        AS total_jobs,
            COUNT(*) FILTER (WHERE kind='tender')                     AS total_tenders,
            COUNT(*) FILTER (WHERE kind='job' AND status='active')    AS active_jobs,
            COUNT(*) FILTER (WHERE kind='tender' AND status='active') AS active_tenders
        FROM postings`
	if err := s.db.GetContext(ctx, stats, query); err != nil {
		return nil, err
	}
	return stats, nil
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return err
}
