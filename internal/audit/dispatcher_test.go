package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rental-platform/internal/db"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (m *memorySink) Name() string { return "memory" }

func (m *memorySink) Write(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	if m.fail {
		return errors.New("sink down")
	}
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherFansOut(t *testing.T) {
	a, b := &memorySink{}, &memorySink{fail: true}
	d := NewDispatcher(quiet(), a, b)

	id := uuid.New()
	d.Dispatch(Event{Action: "booking_created", Entity: "booking", EntityID: &id})
	d.Dispatch(Event{Action: "booking_confirmed", Entity: "booking", EntityID: &id})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	require.Len(t, a.events, 2)
	require.Len(t, b.events, 2)
	assert.Equal(t, "booking_created", a.events[0].Action)
	assert.False(t, a.events[0].At.IsZero())
}

func TestCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(quiet())
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))
}

func TestLoggerWritesRow(t *testing.T) {
	gdb, err := db.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	actor := uuid.New()
	l := New(gdb)
	require.NoError(t, l.Write(context.Background(), Event{
		ActorID:  &actor,
		Action:   "viewing_scheduled",
		Entity:   "viewing",
		Metadata: map[string]any{"duration": 30},
	}))

	var row models.AuditLog
	require.NoError(t, gdb.First(&row).Error)
	assert.Equal(t, "viewing_scheduled", row.Action)
	assert.Equal(t, actor, *row.ActorID)
	assert.JSONEq(t, `{"duration":30}`, row.Metadata)
}
