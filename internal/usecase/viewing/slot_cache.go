package viewing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlotCache stores enumerated free slots per agent, day and duration.
//
// Each agent day carries a version that Invalidate bumps. Get reports the
// version it saw on a miss and Set only stores while the day is still at
// that version, so a list computed before a concurrent write is dropped.
type SlotCache interface {
	Get(ctx context.Context, agentID uuid.UUID, day string, duration int) (slots []time.Time, version int64, hit bool, err error)
	Set(ctx context.Context, agentID uuid.UUID, day string, duration int, version int64, slots []time.Time) error
	// Invalidate drops every duration cached for the agent's day.
	Invalidate(ctx context.Context, agentID uuid.UUID, day string) error
}

type NopSlotCache struct{}

func (NopSlotCache) Get(context.Context, uuid.UUID, string, int) ([]time.Time, int64, bool, error) {
	return nil, 0, false, nil
}

func (NopSlotCache) Set(context.Context, uuid.UUID, string, int, int64, []time.Time) error {
	return nil
}

func (NopSlotCache) Invalidate(context.Context, uuid.UUID, string) error {
	return nil
}

var _ SlotCache = NopSlotCache{}
