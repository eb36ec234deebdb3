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

// ======================================================
// INPUT
// ======================================================

type ScheduleViewingInput struct {
	PropertyID      uuid.UUID
	AgentID         uuid.UUID
	ApplicantID     *uuid.UUID
	ActorID         uuid.UUID
	Start           time.Time
	DurationMinutes int
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type ScheduleViewing struct {
	repo  domain.Repository
	grid  domain.Grid
	cache SlotCache
	audit *audit.Dispatcher
	log   *slog.Logger
}

func NewScheduleViewing(
	repo domain.Repository,
	grid domain.Grid,
	cache SlotCache,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *ScheduleViewing {
	return &ScheduleViewing{
		repo:  repo,
		grid:  grid,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

func (uc *ScheduleViewing) Execute(
	ctx context.Context,
	in ScheduleViewingInput,
) (*models.ViewingSchedule, error) {

	if in.DurationMinutes == 0 {
		in.DurationMinutes = domain.DefaultDurationMinutes
	}
	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}
	if in.Start.IsZero() {
		return nil, httperr.ErrValidation("invalid_date")
	}
	start := in.Start.UTC().Truncate(time.Minute)

	var created *models.ViewingSchedule

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetProperty(ctx, in.PropertyID); err != nil {
			return err
		}
		if err := tx.LockAgent(ctx, in.AgentID); err != nil {
			return err
		}

		conflict, err := hasConflict(ctx, tx, uc.grid, in.AgentID, domain.NewWindow(start, in.DurationMinutes), nil)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrConflict("agent_unavailable")
		}

		v := &models.ViewingSchedule{
			PropertyID:      in.PropertyID,
			AgentID:         in.AgentID,
			ApplicantID:     in.ApplicantID,
			ScheduledDate:   start,
			DurationMinutes: in.DurationMinutes,
			ViewingStatus:   string(domain.StatusScheduled),
			Notes:           in.Notes,
		}
		if err := tx.CreateViewing(ctx, v); err != nil {
			return err
		}
		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, uc.grid, created)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "viewing_scheduled",
		Entity:   "viewing",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"agent_id": created.AgentID,
			"start":    created.ScheduledDate,
			"duration": created.DurationMinutes,
		},
	})

	return created, nil
}

func invalidate(ctx context.Context, cache SlotCache, log *slog.Logger, grid domain.Grid, v *models.ViewingSchedule) {
	if err := cache.Invalidate(ctx, v.AgentID, dayKey(grid, v.ScheduledDate)); err != nil {
		log.Warn("slot cache invalidation failed", "agent_id", v.AgentID, "error", err)
	}
}
