package wire

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/adaptor"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/middleware"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	anyRole := middleware.Authorize(config.JWT.Secret, log,
		entity.RoleUser, entity.RoleAdmin, entity.RoleRoot)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products/{id}/reviews", reviewHandler.ListProductReviews)

	// ==================== PROTECTED ROUTES ====================
	r.With(anyRole).Get("/api/products/{id}/reviews/mine", reviewHandler.GetOwnReview)
	r.With(anyRole).Post("/api/products/{id}/reviews", reviewHandler.CreateReview)
	r.With(anyRole).Put("/api/reviews/{id}", reviewHandler.UpdateReview)
	r.With(anyRole).Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
}
