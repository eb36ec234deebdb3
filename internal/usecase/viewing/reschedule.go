package viewing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type RescheduleViewingInput struct {
	ViewingID       uuid.UUID
	ActorID         uuid.UUID
	Start           time.Time
	DurationMinutes int
}

// RescheduleViewing retires a scheduled viewing and books a replacement that
// points back to it through rescheduled_from.
type RescheduleViewing struct {
	repo  domain.Repository
	grid  domain.Grid
	cache SlotCache
	audit *audit.Dispatcher
	log   *slog.Logger
}

func NewRescheduleViewing(
	repo domain.Repository,
	grid domain.Grid,
	cache SlotCache,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *RescheduleViewing {
	return &RescheduleViewing{repo: repo, grid: grid, cache: cache, audit: audit, log: log}
}

func (uc *RescheduleViewing) Execute(
	ctx context.Context,
	in RescheduleViewingInput,
) (*models.ViewingSchedule, error) {

	if in.Start.IsZero() {
		return nil, httperr.ErrValidation("invalid_date")
	}
	if in.DurationMinutes != 0 {
		if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
			return nil, err
		}
	}
	start := in.Start.UTC().Truncate(time.Minute)

	var old, replacement *models.ViewingSchedule

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		old, err = tx.GetViewing(ctx, in.ViewingID)
		if err != nil {
			return err
		}
		if !canManage(old, in.ActorID) {
			return httperr.ErrForbidden("forbidden")
		}
		if err := domain.MarkRescheduled(old); err != nil {
			return err
		}
		if err := tx.LockAgent(ctx, old.AgentID); err != nil {
			return err
		}

		duration := in.DurationMinutes
		if duration == 0 {
			duration = old.DurationMinutes
		}

		conflict, err := hasConflict(ctx, tx, uc.grid, old.AgentID, domain.NewWindow(start, duration), &old.ID)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrConflict("agent_unavailable")
		}

		if err := tx.UpdateViewing(ctx, old); err != nil {
			return err
		}

		oldID := old.ID
		replacement = &models.ViewingSchedule{
			PropertyID:      old.PropertyID,
			AgentID:         old.AgentID,
			ApplicantID:     old.ApplicantID,
			ScheduledDate:   start,
			DurationMinutes: duration,
			ViewingStatus:   string(domain.StatusScheduled),
			Notes:           old.Notes,
			RescheduledFrom: &oldID,
		}
		return tx.CreateViewing(ctx, replacement)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, uc.grid, old)
	invalidate(ctx, uc.cache, uc.log, uc.grid, replacement)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "viewing_rescheduled",
		Entity:   "viewing",
		EntityID: &replacement.ID,
		Metadata: map[string]any{"rescheduled_from": old.ID},
	})

	return replacement, nil
}

// canManage is true for the agent and the applicant of the viewing.
func canManage(v *models.ViewingSchedule, actor uuid.UUID) bool {
	if v.AgentID == actor {
		return true
	}
	return v.ApplicantID != nil && *v.ApplicantID == actor
}
