package models

import "time"

// PostingKind discriminates the two posting variants stored in the
// postings table.
type PostingKind string

const (
	KindJob    PostingKind = "job"
	KindTender PostingKind = "tender"
)

// PostingStatus values mirror the posting_status enum in PostgreSQL.
// Status is mutated only by the admin moderation workflow.
type PostingStatus string

const (
	PostingPending  PostingStatus = "pending"
	PostingActive   PostingStatus = "active"
	PostingRejected PostingStatus = "rejected"
)

// SubmissionStatus values mirror the submission_status enum shared by
// applications and proposals.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Job is a posting of kind "job". The JSON names are the exact field
// names the listing UI sends and renders.
type Job struct {
	ID           int           `db:"id" json:"id"`
	Title        string        `db:"title" json:"title" validate:"required,max=200"`
	Company      string        `db:"organization" json:"company" validate:"required,max=200"`
	Location     string        `db:"location" json:"location,omitempty"`
	JobType      string        `db:"category" json:"job_type,omitempty"`
	SalaryRange  string        `db:"budget_range" json:"salary_range,omitempty"`
	Description  string        `db:"description" json:"description" validate:"required"`
	Requirements string        `db:"requirements" json:"requirements,omitempty"`
	ContactEmail string        `db:"contact_email" json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string        `db:"contact_phone" json:"contact_phone,omitempty"`
	ExpiresAt    *time.Time    `db:"expires_at" json:"expires_at,omitempty"`
	Status       PostingStatus `db:"status" json:"status"`
	CreatedBy    string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	Expired      bool          `db:"-" json:"expired"`
}

// Tender is a posting of kind "tender".
type Tender struct {
	ID                 int           `db:"id" json:"id"`
	Title              string        `db:"title" json:"title" validate:"required,max=200"`
	Organization       string        `db:"organization" json:"organization" validate:"required,max=200"`
	ReferenceNumber    string        `db:"reference_number" json:"reference_number,omitempty"`
	Category           string        `db:"category" json:"category,omitempty"`
	BudgetRange        string        `db:"budget_range" json:"budget_range,omitempty"`
	Description        string        `db:"description" json:"description" validate:"required"`
	Requirements       string        `db:"requirements" json:"requirements,omitempty"`
	ContactEmail       string        `db:"contact_email" json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone       string        `db:"contact_phone" json:"contact_phone,omitempty"`
	SubmissionDeadline *time.Time    `db:"expires_at" json:"submission_deadline,omitempty"`
	Status             PostingStatus `db:"status" json:"status"`
	CreatedBy          string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	Expired            bool          `db:"-" json:"expired"`
}

// Application is a candidate submission against a job posting.
// AIMatchScore and AIAnalysis stay nil until the scoring service has
// answered and are never overwritten once set.
type Application struct {
	ID             int              `db:"id" json:"id"`
	JobID          int              `db:"job_id" json:"job_id" validate:"required"`
	ApplicantName  string           `db:"applicant_name" json:"applicant_name" validate:"required,max=200"`
	ApplicantEmail string           `db:"applicant_email" json:"applicant_email" validate:"required,email"`
	ApplicantPhone string           `db:"applicant_phone" json:"applicant_phone,omitempty"`
	ResumeURL      string           `db:"resume_url" json:"resume_url" validate:"required"`
	CoverLetter    string           `db:"cover_letter" json:"cover_letter,omitempty"`
	AIMatchScore   *int             `db:"ai_match_score" json:"ai_match_score"`
	AIAnalysis     *string          `db:"ai_analysis" json:"ai_analysis"`
	Status         SubmissionStatus `db:"status" json:"status"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`

	// Joined from the postings table for the admin review view.
	JobTitle string `db:"job_title" json:"job_title,omitempty"`
	Company  string `db:"company" json:"company,omitempty"`
}

// Proposal is a company submission against a tender posting. Proposals
// are not AI-scored.
type Proposal struct {
	ID           int              `db:"id" json:"id"`
	TenderID     int              `db:"tender_id" json:"tender_id" validate:"required"`
	CompanyName  string           `db:"company_name" json:"company_name" validate:"required,max=200"`
	ContactEmail string           `db:"contact_email" json:"contact_email" validate:"required,email"`
	ContactPhone string           `db:"contact_phone" json:"contact_phone,omitempty"`
	ProposalURL  string           `db:"proposal_url" json:"proposal_url,omitempty"`
	Status       SubmissionStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// AdminStats is the dashboard counters payload.
type AdminStats struct {
	TotalJobs     int `db:"total_jobs" json:"totalJobs"`
	TotalTenders  int `db:"total_tenders" json:"totalTenders"`
	ActiveJobs    int `db:"active_jobs" json:"activeJobs"`
	ActiveTenders int `db:"active_tenders" json:"activeTenders"`
}

// IsExpired reports whether a deadline lies in the past relative to now.
// A nil deadline never expires.
func IsExpired(deadline *time.Time, now time.Time) bool {
	return deadline != nil && deadline.Before(now)
}
