package booking

import "github.com/BruksfildServices01/rental-platform/internal/httperr"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// BlockingStatuses are the states that hold the dates of a stay.
var BlockingStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.IsBlocking() {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
