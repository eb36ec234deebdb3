package viewing

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/timezone"
)

type FindConflictsInput struct {
	AgentID         uuid.UUID
	Start           time.Time
	DurationMinutes int
}

// FindConflicts answers whether an agent could take a viewing at Start.
type FindConflicts struct {
	repo domain.Repository
	grid domain.Grid
}

func NewFindConflicts(repo domain.Repository, grid domain.Grid) *FindConflicts {
	return &FindConflicts{repo: repo, grid: grid}
}

func (uc *FindConflicts) Execute(ctx context.Context, in FindConflictsInput) (bool, error) {
	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return false, err
	}
	return hasConflict(ctx, uc.repo, uc.grid, in.AgentID, domain.NewWindow(in.Start, in.DurationMinutes), nil)
}

func hasConflict(
	ctx context.Context,
	repo domain.Repository,
	grid domain.Grid,
	agentID uuid.UUID,
	w domain.Window,
	exclude *uuid.UUID,
) (bool, error) {

	slots, err := repo.FetchScheduledSlots(ctx, agentID, grid.LookbackFor(w), w.End)
	if err != nil {
		return false, err
	}
	if exclude != nil {
		kept := slots[:0]
		for _, s := range slots {
			if s.ID != *exclude {
				kept = append(kept, s)
			}
		}
		slots = kept
	}
	return grid.Conflicts(w, slots), nil
}

func dayKey(grid domain.Grid, t time.Time) string {
	return t.In(grid.Location).Format(timezone.DateLayout)
}
