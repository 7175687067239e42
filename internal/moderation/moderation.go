// Package moderation defines the one-way status machines applied by
// admins to postings and submissions.
//
// Postings:
//
//	pending ──approve──► active
//	pending ──reject───► rejected
//
// Submissions (applications and proposals, decoupled from the posting):
//
//	pending ──accept──► accepted
//	pending ──reject──► rejected
//
// active, rejected and accepted are terminal. There is no path back to
// pending.
package moderation

import (
	"fmt"

	"wadhifa/models"
)

var postingTransitions = map[models.PostingStatus][]models.PostingStatus{
	models.PostingPending: {models.PostingActive, models.PostingRejected},
	// active and rejected are terminal
}

var submissionTransitions = map[models.SubmissionStatus][]models.SubmissionStatus{
	models.SubmissionPending: {models.SubmissionAccepted, models.SubmissionRejected},
	// accepted and rejected are terminal
}

// ParsePostingStatus converts a raw string to a PostingStatus, returning
// an error for unknown values.
func ParsePostingStatus(s string) (models.PostingStatus, error) {
	st := models.PostingStatus(s)
	switch st {
	case models.PostingPending, models.PostingActive, models.PostingRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown posting status %q", s)
}

// ParseSubmissionStatus converts a raw string to a SubmissionStatus,
// returning an error for unknown values.
func ParseSubmissionStatus(s string) (models.SubmissionStatus, error) {
	st := models.SubmissionStatus(s)
	switch st {
	case models.SubmissionPending, models.SubmissionAccepted, models.SubmissionRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown submission status %q", s)
}

// CanTransitionPosting returns true when moving from → to is permitted
// by the posting state machine.
func CanTransitionPosting(from, to models.PostingStatus) bool {
	for _, s := range postingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionSubmission returns true when moving from → to is
// permitted by the submission state machine.
func CanTransitionSubmission(from, to models.SubmissionStatus) bool {
	for _, s := range submissionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
