package wire

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/adaptor"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/middleware"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	// Admin accounts can only be minted by root.
	r.With(middleware.Authorize(config.JWT.Secret, log, entity.RoleRoot)).
		Post("/api/auth/admins", authHandler.CreateAdmin)
}
