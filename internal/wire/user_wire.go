package wire

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/adaptor"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/middleware"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	anyRole := middleware.Authorize(config.JWT.Secret, log,
		entity.RoleUser, entity.RoleAdmin, entity.RoleRoot)
	staffOnly := middleware.Authorize(config.JWT.Secret, log,
		entity.RoleAdmin, entity.RoleRoot)

	// Listing the directory is a staff operation.
	r.With(staffOnly).Get("/api/users", userHandler.ListUsers)

	// Regular users reach only their own record; the service enforces it.
	r.With(anyRole).Get("/api/users/{id}", userHandler.GetUser)
	r.With(anyRole).Put("/api/users/{id}", userHandler.UpdateUser)
	r.With(anyRole).Delete("/api/users/{id}", userHandler.DeleteUser)
}
