package wire

import (
	"github.com/C4ndyFl4mes/dt207g-project/internal/adaptor"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/middleware"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	staffOnly := middleware.Authorize(config.JWT.Secret, log,
		entity.RoleAdmin, entity.RoleRoot)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products", productHandler.ListProducts)
	r.Get("/api/categories/{category}/products", productHandler.ListProductsInCategory)
	r.Get("/api/categories/{category}/products/{product}", productHandler.GetProduct)

	// ==================== PROTECTED ROUTES ====================
	r.With(staffOnly).Post("/api/products", productHandler.CreateProduct)
	r.With(staffOnly).Put("/api/products/{id}", productHandler.UpdateProduct)
	r.With(staffOnly).Delete("/api/products/{id}", productHandler.DeleteProduct)
}
