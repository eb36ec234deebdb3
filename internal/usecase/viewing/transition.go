package viewing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type CompleteViewingInput struct {
	ViewingID  uuid.UUID
	ActorID    uuid.UUID
	AgentNotes string
	Feedback   datatypes.JSON
}

type CompleteViewing struct {
	repo  domain.Repository
	grid  domain.Grid
	cache SlotCache
	audit *audit.Dispatcher
	log   *slog.Logger
	now   func() time.Time
}

func NewCompleteViewing(
	repo domain.Repository,
	grid domain.Grid,
	cache SlotCache,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CompleteViewing {
	return &CompleteViewing{repo: repo, grid: grid, cache: cache, audit: audit, log: log, now: utcNow}
}

// Execute is reserved to the viewing's agent.
func (uc *CompleteViewing) Execute(ctx context.Context, in CompleteViewingInput) (*models.ViewingSchedule, error) {
	v, err := uc.repo.GetViewing(ctx, in.ViewingID)
	if err != nil {
		return nil, err
	}
	if v.AgentID != in.ActorID {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if err := domain.Complete(v, uc.now(), in.AgentNotes, in.Feedback); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateViewing(ctx, v); err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, uc.grid, v)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "viewing_completed",
		Entity:   "viewing",
		EntityID: &v.ID,
	})
	return v, nil
}

type CancelViewing struct {
	repo  domain.Repository
	grid  domain.Grid
	cache SlotCache
	audit *audit.Dispatcher
	log   *slog.Logger
	now   func() time.Time
}

func NewCancelViewing(
	repo domain.Repository,
	grid domain.Grid,
	cache SlotCache,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CancelViewing {
	return &CancelViewing{repo: repo, grid: grid, cache: cache, audit: audit, log: log, now: utcNow}
}

func (uc *CancelViewing) Execute(ctx context.Context, viewingID, actorID uuid.UUID) (*models.ViewingSchedule, error) {
	v, err := uc.repo.GetViewing(ctx, viewingID)
	if err != nil {
		return nil, err
	}
	if !canManage(v, actorID) {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if err := domain.Cancel(v, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateViewing(ctx, v); err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, uc.grid, v)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "viewing_cancelled",
		Entity:   "viewing",
		EntityID: &v.ID,
	})
	return v, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
