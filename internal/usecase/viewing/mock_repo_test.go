package viewing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockRepo) LockAgent(ctx context.Context, agentID uuid.UUID) error {
	args := m.Called(ctx, agentID)
	return args.Error(0)
}

func (m *MockRepo) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockRepo) FetchScheduledSlots(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]models.ViewingSchedule, error) {
	args := m.Called(ctx, agentID, from, to)
	return args.Get(0).([]models.ViewingSchedule), args.Error(1)
}

func (m *MockRepo) CreateViewing(ctx context.Context, v *models.ViewingSchedule) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepo) GetViewing(ctx context.Context, id uuid.UUID) (*models.ViewingSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ViewingSchedule), args.Error(1)
}

func (m *MockRepo) UpdateViewing(ctx context.Context, v *models.ViewingSchedule) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepo) ListViewings(ctx context.Context, f domain.ListFilter) ([]models.ViewingSchedule, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.ViewingSchedule), args.Error(1)
}

// memoryCache is a versioned SlotCache that records invalidations.
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]time.Time
	versions    map[string]int64
	invalidated []string
	failReads   bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]time.Time{}, versions: map[string]int64{}}
}

func agentDay(agentID uuid.UUID, day string) string {
	return agentID.String() + "|" + day
}

func cacheKey(agentID uuid.UUID, day string, duration int) string {
	return fmt.Sprintf("%s|%d", agentDay(agentID, day), duration)
}

func (c *memoryCache) Get(_ context.Context, agentID uuid.UUID, day string, duration int) ([]time.Time, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return nil, 0, false, context.DeadlineExceeded
	}
	v, ok := c.entries[cacheKey(agentID, day, duration)]
	return v, c.versions[agentDay(agentID, day)], ok, nil
}

func (c *memoryCache) Set(_ context.Context, agentID uuid.UUID, day string, duration int, version int64, slots []time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[agentDay(agentID, day)] != version {
		return nil
	}
	c.entries[cacheKey(agentID, day, duration)] = slots
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, agentID uuid.UUID, day string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := agentDay(agentID, day) + "|"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.versions[agentDay(agentID, day)]++
	c.invalidated = append(c.invalidated, agentDay(agentID, day))
	return nil
}

func (c *memoryCache) cached(agentID uuid.UUID, day string, duration int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[cacheKey(agentID, day, duration)]
	return ok
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(quietLogger())
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func scheduledAt(agentID uuid.UUID, start string, minutes int) models.ViewingSchedule {
	v := models.ViewingSchedule{
		AgentID:         agentID,
		ScheduledDate:   at(start),
		DurationMinutes: minutes,
		ViewingStatus:   string(domain.StatusScheduled),
	}
	v.ID = uuid.New()
	return v
}
