package viewing

import "github.com/BruksfildServices01/rental-platform/internal/httperr"

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 120
	DefaultDurationMinutes = 30
)

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return httperr.ErrValidation("invalid_duration")
	}
	return nil
}

// CanLeaveScheduled guards every transition; only scheduled viewings move.
func CanLeaveScheduled(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrConflict("invalid_state")
	}
	return nil
}
