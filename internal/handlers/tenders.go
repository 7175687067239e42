package handlers

import (
	"net/http"
	"time"

	"wadhifa/internal/middleware"
	"wadhifa/models"
)

type tenderPayload struct {
	Title              string `json:"title" validate:"required,max=200"`
	Organization       string `json:"organization" validate:"required,max=200"`
	ReferenceNumber    string `json:"reference_number"`
	Category           string `json:"category"`
	BudgetRange        string `json:"budget_range"`
	Description        string `json:"description" validate:"required"`
	Requirements       string `json:"requirements"`
	ContactEmail       string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone       string `json:"contact_phone"`
	SubmissionDeadline string `json:"submission_deadline"`
}

// CreateTenderHandler handles POST /api/tenders.
func (h *Handler) CreateTenderHandler(w http.ResponseWriter, r *http.Request) {
	var payload tenderPayload
	if err := decodeBody(w, r, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.checkPayload(&payload); err != nil {
		h.writeError(w, err)
		return
	}
	deadline, err := parseDeadline("submission_deadline", payload.SubmissionDeadline)
	if err != nil {
		h.writeError(w, err)
		return
	}

	tender := &models.Tender{
		Title:              payload.Title,
		Organization:       payload.Organization,
		ReferenceNumber:    payload.ReferenceNumber,
		Category:           payload.Category,
		BudgetRange:        payload.BudgetRange,
		Description:        payload.Description,
		Requirements:       payload.Requirements,
		ContactEmail:       payload.ContactEmail,
		ContactPhone:       payload.ContactPhone,
		SubmissionDeadline: deadline,
		CreatedBy:          r.Header.Get(middleware.IdentityHeader),
	}

	if err := h.Store.CreateTender(r.Context(), tender); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, tender)
}

// GetTendersHandler handles GET /api/tenders with the same filters as
// the job listing.
func (h *Handler) GetTendersHandler(w http.ResponseWriter, r *http.Request) {
	status, owner, err := postingListParams(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	tenders, err := h.Store.GetTenders(r.Context(), status, owner)
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

// GetTenderHandler handles GET /api/tenders/{id}.
func (h *Handler) GetTenderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}

	tender, err := h.Store.GetTender(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	tender.Expired = models.IsExpired(tender.SubmissionDeadline, time.Now())
	h.respondJSON(w, http.StatusOK, tender)
}
