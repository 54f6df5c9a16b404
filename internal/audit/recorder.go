// Package audit records audit events consumed by the worker.
package audit

import (
	"context"

	"github.com/Domenick1991/airadmin/internal/kafka"
	"go.uber.org/zap"
)

type Recorder struct {
	log *zap.Logger
}

func NewRecorder(log *zap.Logger) *Recorder {
	return &Recorder{log: log.Named("audit")}
}

func (r *Recorder) Record(_ context.Context, event kafka.AuditEvent) error {
	r.log.Info(event.Type,
		zap.String("event_id", event.ID),
		zap.String("entity", event.Entity),
		zap.Int64s("entity_ids", event.EntityIDs),
		zap.Int64("actor_id", event.ActorID),
		zap.String("actor", event.ActorName),
		zap.Time("at", event.At),
	)
	return nil
}
