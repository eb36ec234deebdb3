package viewing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/timezone"
)

type ListAvailableSlotsInput struct {
	AgentID         uuid.UUID
	Date            time.Time
	DurationMinutes int
}

type ListAvailableSlots struct {
	repo  domain.Repository
	grid  domain.Grid
	cache SlotCache
	log   *slog.Logger
}

func NewListAvailableSlots(
	repo domain.Repository,
	grid domain.Grid,
	cache SlotCache,
	log *slog.Logger,
) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo, grid: grid, cache: cache, log: log}
}

// Execute returns the free starts of the agent's day in ascending order.
// Cache failures fall through to the store and skip the write back.
func (uc *ListAvailableSlots) Execute(ctx context.Context, in ListAvailableSlotsInput) ([]time.Time, error) {
	if in.DurationMinutes == 0 {
		in.DurationMinutes = domain.DefaultDurationMinutes
	}
	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}

	day := in.Date.Format(timezone.DateLayout)
	cached, version, hit, err := uc.cache.Get(ctx, in.AgentID, day, in.DurationMinutes)
	if err != nil {
		uc.log.Warn("slot cache read failed", "agent_id", in.AgentID, "error", err)
	} else if hit {
		return cached, nil
	}
	cacheable := err == nil

	from, to := timezone.DayBounds(in.Date, uc.grid.Location)
	scheduled, err := uc.repo.FetchScheduledSlots(ctx, in.AgentID, from.Add(-domain.MaxDurationMinutes*time.Minute), to)
	if err != nil {
		return nil, err
	}

	slots, err := uc.grid.AvailableSlots(from, in.DurationMinutes, scheduled)
	if err != nil {
		return nil, err
	}

	if !cacheable {
		return slots, nil
	}
	if err := uc.cache.Set(ctx, in.AgentID, day, in.DurationMinutes, version, slots); err != nil {
		uc.log.Warn("slot cache write failed", "agent_id", in.AgentID, "error", err)
	}
	return slots, nil
}
