package application

import (
	"time"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// ActiveStatuses block a second application by the same applicant.
var ActiveStatuses = []string{string(StatusSubmitted), string(StatusUnderReview)}

func (s Status) IsActive() bool {
	return s == StatusSubmitted || s == StatusUnderReview
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusWithdrawn:
		return Status(s), nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

var transitions = map[Status][]Status{
	StatusSubmitted:   {StatusUnderReview, StatusApproved, StatusRejected, StatusWithdrawn},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusWithdrawn},
}

func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrConflict("invalid_state")
}

// Transition moves app to next and stamps the review or decision time.
func Transition(app *models.RentalApplication, next Status, now time.Time) error {
	if err := CanTransition(Status(app.ApplicationStatus), next); err != nil {
		return err
	}
	app.ApplicationStatus = string(next)
	switch next {
	case StatusUnderReview:
		app.ReviewedAt = &now
	case StatusApproved, StatusRejected:
		app.DecidedAt = &now
	}
	return nil
}
