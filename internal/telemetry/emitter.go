// Package telemetry records auth audit events.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/taskflow/internal/platform/requestctx"
	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
)

// Emitter records auth outcomes to the audit trail.
type Emitter struct {
	store storage.AuditStore
	clock func() time.Time
}

// NewEmitter creates a new audit emitter.
func NewEmitter(store storage.AuditStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.AuditEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.OccurredAt.IsZero() {
		if e.clock == nil {
			evt.OccurredAt = time.Now().UTC()
		} else {
			evt.OccurredAt = e.clock().UTC()
		}
	}
	if evt.RequestID == "" {
		evt.RequestID = requestctx.RequestIDFromContext(ctx)
	}
	return e.store.AppendAuditEvent(ctx, evt)
}
