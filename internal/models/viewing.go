package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ViewingSchedule struct {
	Base

	PropertyID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"property_id"`
	ApplicantID *uuid.UUID `gorm:"type:uuid;index" json:"applicant_id"`
	AgentID     uuid.UUID  `gorm:"type:uuid;index:idx_viewing_agent_date;not null" json:"agent_id"`

	ScheduledDate   time.Time `gorm:"index:idx_viewing_agent_date;not null" json:"scheduled_date"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	ViewingStatus string `gorm:"size:20;not null;index" json:"viewing_status"`

	Notes      string         `gorm:"type:text" json:"notes"`
	AgentNotes string         `gorm:"type:text" json:"agent_notes"`
	Feedback   datatypes.JSON `json:"feedback"`

	RescheduledFrom *uuid.UUID `gorm:"type:uuid" json:"rescheduled_from"`

	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}

func (v *ViewingSchedule) End() time.Time {
	return v.ScheduledDate.Add(time.Duration(v.DurationMinutes) * time.Minute)
}
