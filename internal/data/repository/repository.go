package repository

import (
	"errors"

	"github.com/C4ndyFl4mes/dt207g-project/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (email, one review per user and product). The constraint
// is the authoritative guard against check-then-write races; callers
// translate this into a conflict result.
var ErrDuplicate = errors.New("duplicate record")

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
	Review   ReviewRepository
	AuditLog AuditLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Product:  NewProductRepository(db, log),
		Review:   NewReviewRepository(db, log),
		AuditLog: NewAuditLogRepository(db, log),
	}
}
