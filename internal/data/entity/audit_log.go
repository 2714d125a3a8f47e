package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is a best-effort trail of mutating operations. Writing it
// must never fail the operation it describes.
type AuditLog struct {
	ID         uuid.UUID  `db:"id"`
	Action     string     `db:"action"`
	UserID     *uuid.UUID `db:"user_id"`
	TargetID   *uuid.UUID `db:"target_id"`
	TargetKind string     `db:"target_kind"`
	Details    *string    `db:"details"`
	Timestamp  time.Time  `db:"timestamp"`
}
