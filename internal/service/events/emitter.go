// Package events fans a committed mutation out to the audit topic and the
// dashboard cache.
package events

import (
	"context"
	"strconv"
	"time"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Emitter struct {
	producer Producer
	topic    string
	cache    Invalidator
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Emitter)

func WithProducer(p Producer, topic string) Option {
	return func(e *Emitter) {
		e.producer = p
		e.topic = topic
	}
}

func WithCache(c Invalidator) Option {
	return func(e *Emitter) {
		e.cache = c
	}
}

func NewEmitter(log *zap.Logger, opts ...Option) *Emitter {
	e := &Emitter{log: log, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit reports a mutation that already happened. Failures are logged and
// never returned: the mutation is committed either way.
func (e *Emitter) Emit(ctx context.Context, actor domain.Actor, eventType, entity string, ids ...int64) {
	if e == nil {
		return
	}

	if e.cache != nil {
		if err := e.cache.Invalidate(ctx); err != nil {
			e.log.Warn("invalidate dashboard cache", zap.Error(err))
		}
	}

	if e.producer == nil || e.topic == "" {
		return
	}

	event := kafka.AuditEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Entity:    entity,
		EntityIDs: ids,
		ActorID:   actor.UserID,
		ActorName: actor.Name,
		At:        e.now().UTC(),
	}
	key := entity
	if len(ids) == 1 {
		key = entity + ":" + strconv.FormatInt(ids[0], 10)
	}
	if err := e.producer.Publish(ctx, e.topic, key, event); err != nil {
		e.log.Warn("publish audit event",
			zap.String("type", eventType), zap.String("event_id", event.ID), zap.Error(err))
	}
}
