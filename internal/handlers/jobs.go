package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"wadhifa/internal/apperrors"
	"wadhifa/internal/middleware"
	"wadhifa/internal/moderation"
	"wadhifa/models"
)

type jobPayload struct {
	Title        string `json:"title" validate:"required,max=200"`
	Company      string `json:"company" validate:"required,max=200"`
	Location     string `json:"location"`
	JobType      string `json:"job_type"`
	SalaryRange  string `json:"salary_range"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateJobHandler handles POST /api/jobs. New jobs always start
// pending; only the moderation workflow activates them.
func (h *Handler) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := decodeBody(w, r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.checkPayload(&payload); err != nil {
		h.writeError(w, err)
		return
	}
	expiresAt, err := parseDeadline("expires_at", payload.ExpiresAt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	job := &models.Job{
		Title:        payload.Title,
		Company:      payload.Company,
		Location:     payload.Location,
		JobType:      payload.JobType,
		SalaryRange:  payload.SalaryRange,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		ContactEmail: payload.ContactEmail,
		ContactPhone: payload.ContactPhone,
		ExpiresAt:    expiresAt,
		CreatedBy:    r.Header.Get(middleware.IdentityHeader),
	}

	if err := h.Store.CreateJob(r.Context(), job); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, job)
}

// GetJobsHandler handles GET /api/jobs. The public listing defaults to
// active postings; "my postings" is the server-side owner filter, and an
// explicit status filter is available for the moderation views.
func (h *Handler) GetJobsHandler(w http.ResponseWriter, r *http.Request) {
	status, owner, err := postingListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	jobs, err := h.Store.GetJobs(r.Context(), status, owner)
	if err != nil {
		h.writeError(w, err)
		return
	}

	now := time.Now()
	for i := range jobs {
		jobs[i].Expired = models.IsExpired(jobs[i].ExpiresAt, now)
	}
	h.respondJSON(w, http.StatusOK, jobs)
}

// GetJobHandler handles GET /api/jobs/{id}. Expired postings stay
// readable; the expired flag tells the UI to stop accepting submissions.
func (h *Handler) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}

	job, err := h.Store.GetJob(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	job.Expired = models.IsExpired(job.ExpiresAt, time.Now())
	h.respondJSON(w, http.StatusOK, job)
}

func postingListParams(r *http.Request) (models.PostingStatus, string, error) {
	owner := r.URL.Query().Get("owner")

	raw := r.URL.Query().Get("status")
	if raw == "" {
		if owner != "" {
			// Owners see all of their postings regardless of status.
			return "", owner, nil
		}
		return models.PostingActive, "", nil
	}

	status, err := moderation.ParsePostingStatus(raw)
	if err != nil {
		return "", "", apperrors.Validation("status", err.Error())
	}
	return status, owner, nil
}

func urlID(r *http.Request, param string) (int, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errInvalidID(param, raw)
	}
	return id, nil
}
