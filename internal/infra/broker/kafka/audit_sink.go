package kafka

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
)

// AuditSink publishes audit events to a topic, keyed by entity id so one
// entity's history stays on one partition.
type AuditSink struct {
	producer *Producer
	topic    string
}

func NewAuditSink(p *Producer, topic string) *AuditSink {
	return &AuditSink{producer: p, topic: topic}
}

func (s *AuditSink) Name() string { return "kafka" }

func (s *AuditSink) Write(ctx context.Context, ev audit.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	key := ev.Entity
	if ev.EntityID != nil {
		key = ev.EntityID.String()
	}
	return s.producer.Publish(ctx, s.topic, key, payload, map[string]string{
		"action": ev.Action,
		"entity": ev.Entity,
	})
}

var _ audit.Sink = (*AuditSink)(nil)
