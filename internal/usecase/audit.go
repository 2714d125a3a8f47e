package usecase

import (
	"context"
	"time"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recordAudit writes a best-effort trail entry for a mutating
// operation. A failed write is logged and swallowed; it never fails the
// operation it describes.
func recordAudit(ctx context.Context, repo repository.AuditLogRepository, log *zap.Logger,
	action string, actorID, targetID *uuid.UUID, targetKind string, details string) {

	entry := &entity.AuditLog{
		ID:         uuid.New(),
		Action:     action,
		UserID:     actorID,
		TargetID:   targetID,
		TargetKind: targetKind,
		Timestamp:  time.Now(),
	}
	if details != "" {
		entry.Details = &details
	}

	if err := repo.Insert(ctx, entry); err != nil {
		log.Warn("Failed to record audit entry",
			zap.Error(err),
			zap.String("action", action),
			zap.String("target_kind", targetKind),
		)
	}
}
