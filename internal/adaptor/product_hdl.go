package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/request"
	"github.com/C4ndyFl4mes/dt207g-project/internal/usecase"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListProducts(r.Context(), parsePagination(r))
	if err != nil {
		renderError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", response)
}

// ListProductsInCategory handles GET /api/categories/{category}/products
func (h *ProductHandler) ListProductsInCategory(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListProductsInCategory(r.Context(), chi.URLParam(r, "category"), parsePagination(r))
	if err != nil {
		renderError(w, h.log, err, "list products in category")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", response)
}

// GetProduct handles GET /api/categories/{category}/products/{product}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "category"), chi.URLParam(r, "product"))
	if err != nil {
		renderError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", response)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateProduct(r.Context(), identity, &req)
	if err != nil {
		renderError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", response)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateProduct(r.Context(), identity, chi.URLParam(r, "id"), &req)
	if err != nil {
		renderError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", response)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		renderError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product and its reviews deleted successfully", nil)
}
