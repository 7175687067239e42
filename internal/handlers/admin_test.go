package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wadhifa/internal/apperrors"
	"wadhifa/internal/handlers/testutils"
	"wadhifa/models"
)

func reviewApplications() []models.Application {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Application{
		{ID: 1, JobID: 5, ApplicantName: "Unscored", CreatedAt: base},
		{ID: 2, JobID: 5, ApplicantName: "Strong", AIMatchScore: ptrScore(92), CreatedAt: base.Add(time.Hour)},
		{ID: 3, JobID: 5, ApplicantName: "Middling", AIMatchScore: ptrScore(65), CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestGetApplicationsForJobHandlerRanksByScore(t *testing.T) {
	mockStore := &MockStorage{job: activeJob(), appList: reviewApplications()}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/5", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"jobId": "5"})
	w := httptest.NewRecorder()

	handler.GetApplicationsForJobHandler(w, req)

	res := w.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []models.Application
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 3)
	require.Equal(t, "Strong", got[0].ApplicantName)
	require.Equal(t, "Middling", got[1].ApplicantName)
	require.Equal(t, "Unscored", got[2].ApplicantName)
}

func TestGetApplicationsForJobHandlerSortByDate(t *testing.T) {
	mockStore := &MockStorage{job: activeJob(), appList: reviewApplications()}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/5?sort=date", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"jobId": "5"})
	w := httptest.NewRecorder()

	handler.GetApplicationsForJobHandler(w, req)

	res := w.Result()
	defer res.Body.Close()

	var got []models.Application
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 3)
	// Newest first regardless of score.
	require.Equal(t, "Middling", got[0].ApplicantName)
	require.Equal(t, "Unscored", got[2].ApplicantName)
}

func TestGetApplicationsForJobHandlerUnknownJob(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/99", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"jobId": "99"})
	w := httptest.NewRecorder()

	handler.GetApplicationsForJobHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestApplicationsSummaryHandler(t *testing.T) {
	mockStore := &MockStorage{job: activeJob(), appList: reviewApplications()}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/5/summary", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"jobId": "5"})
	w := httptest.NewRecorder()

	handler.ApplicationsSummaryHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"total":3,"highMatch":1,"mediumMatch":1,"averageScore":79}`, string(body))
}

func TestExportApplicationsHandler(t *testing.T) {
	mockStore := &MockStorage{job: activeJob(), appList: reviewApplications()}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/5/export", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"jobId": "5"})
	w := httptest.NewRecorder()

	handler.ExportApplicationsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Disposition"), "applications-job-5.xlsx")
	require.NotEmpty(t, body)
}

func TestAcceptApplicationHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/7/accept", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "7"})
	w := httptest.NewRecorder()

	handler.AcceptApplicationHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Equal(t, models.SubmissionAccepted, mockStore.appStatus[7])
}

func TestRejectApplicationHandlerAlreadyResolved(t *testing.T) {
	mockStore := &MockStorage{
		statusErr: fmt.Errorf("application 7 is accepted: %w", apperrors.ErrInvalidState),
	}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/7/reject", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "7"})
	w := httptest.NewRecorder()

	handler.RejectApplicationHandler(w, req)

	require.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestAdminStatsHandler(t *testing.T) {
	mockStore := &MockStorage{stats: &models.AdminStats{
		TotalJobs: 4, TotalTenders: 2, ActiveJobs: 3, ActiveTenders: 1,
	}}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	w := httptest.NewRecorder()

	handler.AdminStatsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"totalJobs":4,"totalTenders":2,"activeJobs":3,"activeTenders":1}`, string(body))
}

func TestApproveJobHandler(t *testing.T) {
	job := activeJob()
	mockStore := &MockStorage{job: job}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/approve-job/5", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "5"})
	w := httptest.NewRecorder()

	handler.ApproveJobHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, []string{"job/5"}, mockStore.approved)
	require.Contains(t, string(body), `"status":"active"`)
}

func TestApproveJobHandlerAlreadyResolved(t *testing.T) {
	mockStore := &MockStorage{
		job:         activeJob(),
		moderateErr: fmt.Errorf("posting 5 is rejected: %w", apperrors.ErrInvalidState),
	}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/approve-job/5", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "5"})
	w := httptest.NewRecorder()

	handler.ApproveJobHandler(w, req)

	require.Equal(t, http.StatusConflict, w.Result().StatusCode)
	require.Empty(t, mockStore.approved)
}

func TestApproveJobHandlerNotFound(t *testing.T) {
	mockStore := &MockStorage{moderateErr: apperrors.ErrNotFound}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/approve-job/99", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "99"})
	w := httptest.NewRecorder()

	handler.ApproveJobHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestRejectTenderHandler(t *testing.T) {
	mockStore := &MockStorage{tender: &models.Tender{
		Title:        "Road Works",
		Organization: "Ministry of Transport",
		Description:  "Resurface the ring road",
		Status:       models.PostingRejected,
	}}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/reject-tender/9", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "9"})
	w := httptest.NewRecorder()

	handler.RejectTenderHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, []string{"tender/9"}, mockStore.rejected)
	require.Contains(t, string(body), `"status":"rejected"`)
}

func TestPendingJobsHandler(t *testing.T) {
	var gotStatus models.PostingStatus
	mockStore := &MockStorage{
		GetJobsFunc: func(ctx context.Context, status models.PostingStatus, owner string) ([]models.Job, error) {
			gotStatus = status
			return []models.Job{{ID: 1, Title: "Awaiting Review", Status: models.PostingPending}}, nil
		},
	}
	handler := newTestHandler(mockStore, &MockQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pending-jobs", nil)
	w := httptest.NewRecorder()

	handler.PendingJobsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, models.PostingPending, gotStatus)
	require.Contains(t, string(body), "Awaiting Review")
}
