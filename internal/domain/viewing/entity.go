package viewing

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func Complete(v *models.ViewingSchedule, now time.Time, agentNotes string, feedback datatypes.JSON) error {
	if err := CanLeaveScheduled(Status(v.ViewingStatus)); err != nil {
		return err
	}
	v.ViewingStatus = string(StatusCompleted)
	v.CompletedAt = &now
	if agentNotes != "" {
		v.AgentNotes = agentNotes
	}
	if len(feedback) > 0 {
		v.Feedback = feedback
	}
	return nil
}

func Cancel(v *models.ViewingSchedule, now time.Time) error {
	if err := CanLeaveScheduled(Status(v.ViewingStatus)); err != nil {
		return err
	}
	v.ViewingStatus = string(StatusCancelled)
	v.CancelledAt = &now
	return nil
}

func MarkRescheduled(v *models.ViewingSchedule) error {
	if err := CanLeaveScheduled(Status(v.ViewingStatus)); err != nil {
		return err
	}
	v.ViewingStatus = string(StatusRescheduled)
	return nil
}
