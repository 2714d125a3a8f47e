package repository

import (
	"context"
	"fmt"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/database"

	"go.uber.org/zap"
)

type AuditLogRepository interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func (ar *auditLogRepository) Insert(ctx context.Context, entry *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, user_id, target_id, target_kind, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := ar.db.Exec(ctx, query,
		entry.ID,
		entry.Action,
		entry.UserID,
		entry.TargetID,
		entry.TargetKind,
		entry.Details,
		entry.Timestamp,
	)

	if err != nil {
		ar.log.Error("Failed to insert audit log",
			zap.Error(err),
			zap.String("action", entry.Action),
		)
		return fmt.Errorf("insert audit log %s: %w", entry.Action, err)
	}

	return nil
}
