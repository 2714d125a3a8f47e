package entity

import (
	"github.com/google/uuid"
)

// Review is unique per (CreatedBy, ProductID); the database constraint
// is the authoritative guard, the service-level check is advisory.
type Review struct {
	Base
	ProductID uuid.UUID  `db:"product_id"`
	Rating    int        `db:"rating"` // 1-5
	Message   string     `db:"message"`
	CreatedBy uuid.UUID  `db:"created_by"`
	UpdatedBy *uuid.UUID `db:"updated_by"`
}
