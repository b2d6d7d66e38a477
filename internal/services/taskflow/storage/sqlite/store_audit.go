package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
)

// AppendAuditEvent appends one audit record.
func (s *Store) AppendAuditEvent(ctx context.Context, evt storage.AuditEvent) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	eventType := strings.TrimSpace(string(evt.Type))
	if eventType == "" {
		return fmt.Errorf("audit event type is required")
	}
	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}
	var userID sql.NullInt64
	if evt.UserID > 0 {
		userID = sql.NullInt64{Int64: evt.UserID, Valid: true}
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO eventos_auditoria (tipo, usuario_id, email, detalhe, request_id, ocorrido_em)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		eventType, userID, strings.TrimSpace(evt.Email), strings.TrimSpace(evt.Detail),
		strings.TrimSpace(evt.RequestID), toMillis(occurredAt),
	); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
