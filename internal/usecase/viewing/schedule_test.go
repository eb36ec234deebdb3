package viewing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func property() *models.Property {
	p := &models.Property{OwnerID: uuid.New(), IsActive: true}
	p.ID = uuid.New()
	return p
}

func TestScheduleCreatesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	agent := uuid.New()
	p := property()
	repo := new(MockRepo)
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetProperty", ctx, p.ID).Return(p, nil)
	repo.On("LockAgent", ctx, agent).Return(nil)
	repo.On("FetchScheduledSlots", ctx, agent, at("2025-06-10T11:30:00Z"), at("2025-06-10T14:30:00Z")).
		Return([]models.ViewingSchedule{}, nil)
	repo.On("CreateViewing", ctx, mock.AnythingOfType("*models.ViewingSchedule")).Return(nil)

	cache := newMemoryCache()
	uc := NewScheduleViewing(repo, domain.DefaultGrid(), cache, newDispatcher(), quietLogger())

	v, err := uc.Execute(ctx, ScheduleViewingInput{
		PropertyID: p.ID,
		AgentID:    agent,
		ActorID:    agent,
		Start:      at("2025-06-10T14:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), v.ViewingStatus)
	assert.Equal(t, domain.DefaultDurationMinutes, v.DurationMinutes)
	assert.Equal(t, []string{agent.String() + "|2025-06-10"}, cache.invalidated)
	repo.AssertExpectations(t)
}

func TestScheduleRejectsBufferConflict(t *testing.T) {
	ctx := context.Background()
	agent := uuid.New()
	p := property()
	repo := new(MockRepo)
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetProperty", ctx, p.ID).Return(p, nil)
	repo.On("LockAgent", ctx, agent).Return(nil)
	// The previous viewing ends at 13:45, inside the 30 minute buffer.
	repo.On("FetchScheduledSlots", ctx, agent, mock.Anything, mock.Anything).
		Return([]models.ViewingSchedule{scheduledAt(agent, "2025-06-10T13:00:00Z", 45)}, nil)

	uc := NewScheduleViewing(repo, domain.DefaultGrid(), NopSlotCache{}, newDispatcher(), quietLogger())

	_, err := uc.Execute(ctx, ScheduleViewingInput{
		PropertyID:      p.ID,
		AgentID:         agent,
		Start:           at("2025-06-10T14:00:00Z"),
		DurationMinutes: 30,
	})
	assert.True(t, httperr.IsBusiness(err, "agent_unavailable"))
	repo.AssertNotCalled(t, "CreateViewing", mock.Anything, mock.Anything)
}

func TestScheduleFollowingViewingIsNotBuffered(t *testing.T) {
	ctx := context.Background()
	agent := uuid.New()
	p := property()
	repo := new(MockRepo)
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetProperty", ctx, p.ID).Return(p, nil)
	repo.On("LockAgent", ctx, agent).Return(nil)
	repo.On("FetchScheduledSlots", ctx, agent, mock.Anything, mock.Anything).
		Return([]models.ViewingSchedule{}, nil)
	repo.On("CreateViewing", ctx, mock.Anything).Return(nil)

	uc := NewScheduleViewing(repo, domain.DefaultGrid(), NopSlotCache{}, newDispatcher(), quietLogger())

	_, err := uc.Execute(ctx, ScheduleViewingInput{
		PropertyID: p.ID,
		AgentID:    agent,
		Start:      at("2025-06-10T14:00:00Z"),
	})
	assert.NoError(t, err)
}

func TestScheduleRejectsDurationBeforeStore(t *testing.T) {
	repo := new(MockRepo)
	uc := NewScheduleViewing(repo, domain.DefaultGrid(), NopSlotCache{}, newDispatcher(), quietLogger())

	_, err := uc.Execute(context.Background(), ScheduleViewingInput{
		Start:           at("2025-06-10T14:00:00Z"),
		DurationMinutes: 10,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))
	repo.AssertNotCalled(t, "Transaction", mock.Anything)
}

func TestScheduleUnknownProperty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	id := uuid.New()
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetProperty", ctx, id).Return(nil, httperr.ErrNotFound("property_not_found"))

	uc := NewScheduleViewing(repo, domain.DefaultGrid(), NopSlotCache{}, newDispatcher(), quietLogger())
	_, err := uc.Execute(ctx, ScheduleViewingInput{PropertyID: id, Start: at("2025-06-10T14:00:00Z")})

	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	repo.AssertNotCalled(t, "LockAgent", mock.Anything, mock.Anything)
}

func TestFindConflicts(t *testing.T) {
	ctx := context.Background()
	agent := uuid.New()
	repo := new(MockRepo)
	repo.On("FetchScheduledSlots", ctx, agent, mock.Anything, mock.Anything).
		Return([]models.ViewingSchedule{scheduledAt(agent, "2025-06-10T10:00:00Z", 30)}, nil)

	uc := NewFindConflicts(repo, domain.DefaultGrid())

	busy, err := uc.Execute(ctx, FindConflictsInput{AgentID: agent, Start: at("2025-06-10T10:15:00Z"), DurationMinutes: 30})
	require.NoError(t, err)
	assert.True(t, busy)

	free, err := uc.Execute(ctx, FindConflictsInput{AgentID: agent, Start: at("2025-06-10T11:00:00Z"), DurationMinutes: 30})
	require.NoError(t, err)
	assert.False(t, free)
}
