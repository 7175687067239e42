package handlers

import (
	"fmt"
	"net/http"
	"time"

	"wadhifa/internal/export"
	"wadhifa/internal/middleware"
	"wadhifa/internal/ranking"
	"wadhifa/models"
)

// GetApplicationsForJobHandler handles GET /api/admin/applications/{jobId}.
// The list is ranked server-side; ?sort=date switches to submission order.
func (h *Handler) GetApplicationsForJobHandler(w http.ResponseWriter, r *http.Request) {
	jobID, err := urlID(r, "jobId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := h.Store.GetJob(r.Context(), jobID); err != nil {
		h.writeError(w, err)
		return
	}

	apps, err := h.Store.GetApplicationsForJob(r.Context(), jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ranking.Sort(apps, r.URL.Query().Get("sort"))
	h.respondJSON(w, http.StatusOK, apps)
}

// ApplicationsSummaryHandler handles GET /api/admin/applications/{jobId}/summary,
// returning the band counters the review header shows.
func (h *Handler) ApplicationsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	jobID, err := urlID(r, "jobId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := h.Store.GetJob(r.Context(), jobID); err != nil {
		h.writeError(w, err)
		return
	}

	apps, err := h.Store.GetApplicationsForJob(r.Context(), jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ranking.Summarize(apps))
}

// ExportApplicationsHandler handles GET /api/admin/applications/{jobId}/export,
// streaming the ranked list as an xlsx workbook.
func (h *Handler) ExportApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	jobID, err := urlID(r, "jobId")
	if err != nil {
		h.writeError(w, err)
		return
	}
	job, err := h.Store.GetJob(r.Context(), jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	apps, err := h.Store.GetApplicationsForJob(r.Context(), jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	ranking.Sort(apps, ranking.SortByScore)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="applications-job-%d.xlsx"`, jobID))
	if err := export.WriteApplications(w, job.Title, apps); err != nil {
		// Headers are already out; all that is left is logging.
		h.Log.WithField("job_id", jobID).
			WithField("error", err.Error()).
			Error("xlsx export failed")
	}
}

// AcceptApplicationHandler handles POST /api/admin/applications/{id}/accept.
func (h *Handler) AcceptApplicationHandler(w http.ResponseWriter, r *http.Request) {
	h.setApplicationStatus(w, r, models.SubmissionAccepted)
}

// RejectApplicationHandler handles POST /api/admin/applications/{id}/reject.
func (h *Handler) RejectApplicationHandler(w http.ResponseWriter, r *http.Request) {
	h.setApplicationStatus(w, r, models.SubmissionRejected)
}

func (h *Handler) setApplicationStatus(w http.ResponseWriter, r *http.Request, to models.SubmissionStatus) {
	id, err := urlID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.Store.SetApplicationStatus(r.Context(), id, to); err != nil {
		h.writeError(w, err)
		return
	}
	h.Log.WithField("application_id", id).
		WithField("status", string(to)).
		WithField("admin", middleware.AdminEmail(r.Context())).
		Info("application moderated")
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": to})
}

// AdminStatsHandler handles GET /api/admin/stats. Counters are served
// from the Redis cache when one is configured; cache trouble falls back
// to the database.
func (h *Handler) AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	if h.Stats != nil {
		if stats, ok := h.Stats.Get(r.Context()); ok {
			h.respondJSON(w, http.StatusOK, stats)
			return
		}
	}

	stats, err := h.Store.GetAdminStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.Stats != nil {
		h.Stats.Set(r.Context(), stats)
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// PendingJobsHandler handles GET /api/admin/pending-jobs.
func (h *Handler) PendingJobsHandler(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Store.GetJobs(r.Context(), models.PostingPending, "")
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

// PendingTendersHandler handles GET /api/admin/pending-tenders.
func (h *Handler) PendingTendersHandler(w http.ResponseWriter, r *http.Request) {
	tenders, err := h.Store.GetTenders(r.Context(), models.PostingPending, "")
	if err != nil {
		h.writeError(w, err)
		return
	}
	now := time.Now()
	for i := range tenders {
		tenders[i].Expired = models.IsExpired(tenders[i].SubmissionDeadline, now)
	}
	h.respondJSON(w, http.StatusOK, tenders)
}

// ApproveJobHandler handles POST /api/admin/approve-job/{id}.
func (h *Handler) ApproveJobHandler(w http.ResponseWriter, r *http.Request) {
	h.moderateJob(w, r, true)
}

// RejectJobHandler handles DELETE /api/admin/reject-job/{id}. The row is
// marked rejected, not deleted, so the decision stays auditable.
func (h *Handler) RejectJobHandler(w http.ResponseWriter, r *http.Request) {
	h.moderateJob(w, r, false)
}

// ApproveTenderHandler handles POST /api/admin/approve-tender/{id}.
func (h *Handler) ApproveTenderHandler(w http.ResponseWriter, r *http.Request) {
	h.moderateTender(w, r, true)
}

// RejectTenderHandler handles DELETE /api/admin/reject-tender/{id}.
func (h *Handler) RejectTenderHandler(w http.ResponseWriter, r *http.Request) {
	h.moderateTender(w, r, false)
}

func (h *Handler) moderateJob(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := urlID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if approve {
		err = h.Store.ApprovePosting(r.Context(), models.KindJob, id)
	} else {
		err = h.Store.RejectPosting(r.Context(), models.KindJob, id)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logModeration(r, "job", id, approve)

	job, err := h.Store.GetJob(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, job)
}

func (h *Handler) moderateTender(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := urlID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if approve {
		err = h.Store.ApprovePosting(r.Context(), models.KindTender, id)
	} else {
		err = h.Store.RejectPosting(r.Context(), models.KindTender, id)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logModeration(r, "tender", id, approve)

	tender, err := h.Store.GetTender(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tender)
}

func (h *Handler) logModeration(r *http.Request, kind string, id int, approve bool) {
	action := "rejected"
	if approve {
		action = "approved"
	}
	h.Log.WithField("kind", kind).
		WithField("id", id).
		WithField("action", action).
		WithField("admin", middleware.AdminEmail(r.Context())).
		Info("posting moderated")
}
