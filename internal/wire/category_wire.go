package wire

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/adaptor"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/middleware"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	staffOnly := middleware.Authorize(config.JWT.Secret, log,
		entity.RoleAdmin, entity.RoleRoot)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/categories", categoryHandler.ListCategories)
	r.Get("/api/categories/{category}", categoryHandler.GetCategory)

	// ==================== PROTECTED ROUTES ====================
	r.With(staffOnly).Post("/api/categories", categoryHandler.CreateCategory)
	r.With(staffOnly).Put("/api/categories/{category}", categoryHandler.UpdateCategory)
	r.With(staffOnly).Delete("/api/categories/{category}", categoryHandler.DeleteCategory)
}
