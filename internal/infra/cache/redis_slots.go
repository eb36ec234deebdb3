package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	viewinguc "github.com/BruksfildServices01/rental-platform/internal/usecase/viewing"
)

// RedisSlots caches enumerated viewing slots in one hash per agent and day.
// Each field is a duration in minutes.
type RedisSlots struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlots(client *redis.Client, ttl time.Duration) *RedisSlots {
	return &RedisSlots{client: client, ttl: ttl}
}

// NewClient accepts either a redis:// URL or a bare host:port.
func NewClient(addr string) (*redis.Client, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// versionTTL outlives any slot entry so a version is never reset while a
// reader still holds it.
const versionTTL = 24 * time.Hour

func SlotsKey(agentID uuid.UUID, day string) string {
	return "slots:" + agentID.String() + ":" + day
}

func VersionKey(agentID uuid.UUID, day string) string {
	return SlotsKey(agentID, day) + ":v"
}

func (c *RedisSlots) Get(ctx context.Context, agentID uuid.UUID, day string, duration int) ([]time.Time, int64, bool, error) {
	var field, ver *redis.StringCmd
	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		field = p.HGet(ctx, SlotsKey(agentID, day), strconv.Itoa(duration))
		ver = p.Get(ctx, VersionKey(agentID, day))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, err
	}

	version, err := versionOf(ver)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := field.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}
	slots, err := decodeSlots(raw)
	if err != nil {
		return nil, 0, false, err
	}
	return slots, version, true, nil
}

// Set writes under WATCH on the version key. A bumped version or a
// concurrent transaction leaves the cache untouched.
func (c *RedisSlots) Set(ctx context.Context, agentID uuid.UUID, day string, duration int, version int64, slots []time.Time) error {
	raw, err := encodeSlots(slots)
	if err != nil {
		return err
	}
	key := SlotsKey(agentID, day)
	vkey := VersionKey(agentID, day)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := versionOf(tx.Get(ctx, vkey))
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, strconv.Itoa(duration), raw)
			p.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisSlots) Invalidate(ctx context.Context, agentID uuid.UUID, day string) error {
	vkey := VersionKey(agentID, day)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, vkey)
		p.Expire(ctx, vkey, versionTTL)
		p.Del(ctx, SlotsKey(agentID, day))
		return nil
	})
	return err
}

func versionOf(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: slot version: %w", err)
	}
	return v, nil
}

func encodeSlots(slots []time.Time) ([]byte, error) {
	if slots == nil {
		slots = []time.Time{}
	}
	return json.Marshal(slots)
}

func decodeSlots(raw []byte) ([]time.Time, error) {
	var out []time.Time
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("redis: decode slots: %w", err)
	}
	return out, nil
}

var _ viewinguc.SlotCache = (*RedisSlots)(nil)
