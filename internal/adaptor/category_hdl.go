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

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListCategories(r.Context(), parsePagination(r))
	if err != nil {
		renderError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved successfully", response)
}

// GetCategory handles GET /api/categories/{category}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		renderError(w, h.log, err, "get category")
		return
	}

	utils.ResponseSuccess(w, "Category retrieved successfully", response)
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCategoryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateCategory(r.Context(), identity, &req)
	if err != nil {
		renderError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created successfully", response)
}

// UpdateCategory handles PUT /api/categories/{category}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateCategoryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateCategory(r.Context(), identity, chi.URLParam(r, "category"), &req)
	if err != nil {
		renderError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Category updated successfully", response)
}

// DeleteCategory handles DELETE /api/categories/{category}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), identity, chi.URLParam(r, "category")); err != nil {
		renderError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseSuccess(w, "Category and its products deleted successfully", nil)
}
