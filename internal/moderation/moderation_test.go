package moderation_test

import (
	"testing"

	"wadhifa/internal/moderation"
	"wadhifa/models"
)

func TestParsePostingStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "active", "rejected"}
	for _, s := range valid {
		got, err := moderation.ParsePostingStatus(s)
		if err != nil {
			t.Errorf("ParsePostingStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParsePostingStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParsePostingStatus_InvalidValue(t *testing.T) {
	_, err := moderation.ParsePostingStatus("archived")
	if err == nil {
		t.Error(`ParsePostingStatus("archived") expected error, got nil`)
	}
}

func TestParseSubmissionStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "accepted", "rejected"}
	for _, s := range valid {
		got, err := moderation.ParseSubmissionStatus(s)
		if err != nil {
			t.Errorf("ParseSubmissionStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseSubmissionStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseSubmissionStatus_EmptyString(t *testing.T) {
	_, err := moderation.ParseSubmissionStatus("")
	if err == nil {
		t.Error(`ParseSubmissionStatus("") expected error, got nil`)
	}
}

func TestCanTransitionPosting_FromPending(t *testing.T) {
	for _, to := range []models.PostingStatus{models.PostingActive, models.PostingRejected} {
		if !moderation.CanTransitionPosting(models.PostingPending, to) {
			t.Errorf("CanTransitionPosting(pending, %s) should be true", to)
		}
	}
	if moderation.CanTransitionPosting(models.PostingPending, models.PostingPending) {
		t.Error("CanTransitionPosting(pending, pending) should be false")
	}
}

func TestCanTransitionPosting_TerminalsHaveNoExit(t *testing.T) {
	terminals := []models.PostingStatus{models.PostingActive, models.PostingRejected}
	all := []models.PostingStatus{models.PostingPending, models.PostingActive, models.PostingRejected}
	for _, from := range terminals {
		for _, to := range all {
			if moderation.CanTransitionPosting(from, to) {
				t.Errorf("CanTransitionPosting(%s, %s) should be false", from, to)
			}
		}
	}
}

func TestCanTransitionSubmission_FromPending(t *testing.T) {
	for _, to := range []models.SubmissionStatus{models.SubmissionAccepted, models.SubmissionRejected} {
		if !moderation.CanTransitionSubmission(models.SubmissionPending, to) {
			t.Errorf("CanTransitionSubmission(pending, %s) should be true", to)
		}
	}
}

func TestCanTransitionSubmission_TerminalsHaveNoExit(t *testing.T) {
	terminals := []models.SubmissionStatus{models.SubmissionAccepted, models.SubmissionRejected}
	all := []models.SubmissionStatus{models.SubmissionPending, models.SubmissionAccepted, models.SubmissionRejected}
	for _, from := range terminals {
		for _, to := range all {
			if moderation.CanTransitionSubmission(from, to) {
				t.Errorf("CanTransitionSubmission(%s, %s) should be false", from, to)
			}
		}
	}
}
