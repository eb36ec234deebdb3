package viewing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type ListFilter struct {
	PropertyID *uuid.UUID
	AgentID    *uuid.UUID
	From       *time.Time
	To         *time.Time
	Status     string
}

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// LockAgent serializes writers of one agent's calendar until the
	// surrounding transaction ends.
	LockAgent(ctx context.Context, agentID uuid.UUID) error

	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)

	// FetchScheduledSlots returns the agent's scheduled viewings starting in
	// [from, to), ordered by start.
	FetchScheduledSlots(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]models.ViewingSchedule, error)

	CreateViewing(ctx context.Context, v *models.ViewingSchedule) error
	GetViewing(ctx context.Context, id uuid.UUID) (*models.ViewingSchedule, error)
	UpdateViewing(ctx context.Context, v *models.ViewingSchedule) error
	ListViewings(ctx context.Context, f ListFilter) ([]models.ViewingSchedule, error)
}
