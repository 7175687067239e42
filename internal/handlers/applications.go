package handlers

import (
	"net/http"
	"time"

	"wadhifa/internal/apperrors"
	"wadhifa/internal/queue"
	"wadhifa/models"
)

type applicationPayload struct {
	JobID          flexID `json:"job_id" validate:"required"`
	ApplicantName  string `json:"applicant_name" validate:"required,max=200"`
	ApplicantEmail string `json:"applicant_email" validate:"required,email"`
	ApplicantPhone string `json:"applicant_phone"`
	ResumeURL      string `json:"resume_url" validate:"required"`
	CoverLetter    string `json:"cover_letter"`
}

// CreateApplicationHandler handles POST /api/applications. The
// application is persisted unscored and a scoring job is queued; a
// broken queue never fails the submission, the rescore scheduler picks
// the application up later.
func (h *Handler) CreateApplicationHandler(w http.ResponseWriter, r *http.Request) {
	var payload applicationPayload
	if err := decodeBody(w, r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.checkPayload(&payload); err != nil {
		h.writeError(w, err)
		return
	}

	job, err := h.Store.GetJob(r.Context(), int(payload.JobID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	// Only live postings take submissions. Pending, rejected and expired
	// postings all answer as if the job were gone.
	if job.Status != models.PostingActive || models.IsExpired(job.ExpiresAt, time.Now()) {
		h.writeError(w, apperrors.ErrNotFound)
		return
	}

	app := &models.Application{
		JobID:          job.ID,
		ApplicantName:  payload.ApplicantName,
		ApplicantEmail: payload.ApplicantEmail,
		ApplicantPhone: payload.ApplicantPhone,
		ResumeURL:      payload.ResumeURL,
		CoverLetter:    payload.CoverLetter,
	}
	if err := h.Store.CreateApplication(r.Context(), app); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.Queue.Publish(r.Context(), queue.ScoringJob{ApplicationID: app.ID}); err != nil {
		h.Log.WithField("application_id", app.ID).
			WithField("error", err.Error()).
			Warn("queueing scoring job failed, rescore will retry")
	}

	h.respondJSON(w, http.StatusCreated, app)
}

type proposalPayload struct {
	TenderID     flexID `json:"tender_id" validate:"required"`
	CompanyName  string `json:"company_name" validate:"required,max=200"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone"`
	ProposalURL  string `json:"proposal_url"`
}

// CreateProposalHandler handles POST /api/proposals. Proposals are not
// AI-scored, so there is no queue step.
func (h *Handler) CreateProposalHandler(w http.ResponseWriter, r *http.Request) {
	var payload proposalPayload
	if err := decodeBody(w, r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.checkPayload(&payload); err != nil {
		h.writeError(w, err)
		return
	}

	tender, err := h.Store.GetTender(r.Context(), int(payload.TenderID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if tender.Status != models.PostingActive || models.IsExpired(tender.SubmissionDeadline, time.Now()) {
		h.writeError(w, apperrors.ErrNotFound)
		return
	}

	p := &models.Proposal{
		TenderID:     tender.ID,
		CompanyName:  payload.CompanyName,
		ContactEmail: payload.ContactEmail,
		ContactPhone: payload.ContactPhone,
		ProposalURL:  payload.ProposalURL,
	}
	if err := h.Store.CreateProposal(r.Context(), p); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, p)
}
