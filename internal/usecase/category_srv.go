package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/C4ndyFl4mes/dt207g-project/internal/apperr"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/repository"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/request"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/response"
	"github.com/C4ndyFl4mes/dt207g-project/internal/policy"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/token"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	ListCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	GetCategory(ctx context.Context, name string) (*response.CategoryResponse, error)
	CreateCategory(ctx context.Context, actor *token.Identity, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, actor *token.Identity, categoryID string, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor *token.Identity, categoryID string) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) ListCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.repo.Category.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	total, err := s.repo.Category.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.Limit(), total), nil
}

func (s *categoryService) GetCategory(ctx context.Context, name string) (*response.CategoryResponse, error) {
	category, err := s.repo.Category.FindByName(ctx, name)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if category == nil {
		return nil, apperr.New(apperr.NotFound, "Category does not exist.")
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, actor *token.Identity, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	decision := policy.CanManageCatalog(policy.Actor{ID: actor.ID, Role: actor.Role})
	if !decision.Allowed {
		return nil, apperr.New(apperr.Forbidden, decision.Reason)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	actorID := actor.ID
	category := &entity.Category{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Audit: entity.Audit{
			CreatedBy: &actorID,
			UpdatedBy: &actorID,
		},
		Name: req.Name,
		Slug: utils.Slugify(req.Name),
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Category already exists.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not create the category.", err)
	}

	cid := category.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "create_category", &actorID, &cid, "category", category.Name)

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
		zap.String("created_by", actor.ID.String()))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actor *token.Identity, categoryID string, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error) {
	decision := policy.CanManageCatalog(policy.Actor{ID: actor.ID, Role: actor.Role})
	if !decision.Allowed {
		return nil, apperr.New(apperr.Forbidden, decision.Reason)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if category == nil {
		return nil, apperr.New(apperr.NotFound, "Category does not exist.")
	}

	actorID := actor.ID
	category.Name = req.Name
	category.Slug = utils.Slugify(req.Name)
	category.UpdatedBy = &actorID
	category.UpdatedAt = time.Now()

	if err := s.repo.Category.Update(ctx, category); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Category already exists.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not update the category.", err)
	}

	recordAudit(ctx, s.repo.AuditLog, s.log, "update_category", &actorID, &id, "category", category.Name)

	s.log.Info("Category updated",
		zap.String("category_id", categoryID),
		zap.String("updated_by", actor.ID.String()))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

// DeleteCategory removes a category, then every product in it, then
// every review on those products. The steps run in order with no
// rollback: once the category row is gone the deletion stands, and a
// failed later step surfaces as a server fault with enough logged
// context to clean up by hand.
func (s *categoryService) DeleteCategory(ctx context.Context, actor *token.Identity, categoryID string) error {
	decision := policy.CanManageCatalog(policy.Actor{ID: actor.ID, Role: actor.Role})
	if !decision.Allowed {
		return apperr.New(apperr.Forbidden, decision.Reason)
	}

	id, err := uuid.Parse(categoryID)
	if err != nil {
		return apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if category == nil {
		return apperr.New(apperr.NotFound, "Category does not exist.")
	}

	// Collect dependents before the rows disappear.
	productIDs, err := s.repo.Product.FindIDsByCategoryID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.ServerFault, "Could not delete the category.", err)
	}

	productsRemoved, err := s.repo.Product.DeleteByCategoryID(ctx, id)
	if err != nil {
		s.log.Error("Category deleted but product cascade failed",
			zap.Error(err),
			zap.String("category_id", categoryID),
			zap.Int("orphaned_products", len(productIDs)))
		return apperr.Wrap(apperr.ServerFault, "The category was deleted but its products could not be removed.", err)
	}

	reviewsRemoved, err := s.repo.Review.DeleteByProductIDs(ctx, productIDs)
	if err != nil {
		s.log.Error("Category deleted but review cascade failed",
			zap.Error(err),
			zap.String("category_id", categoryID),
			zap.Int("product_count", len(productIDs)))
		return apperr.Wrap(apperr.ServerFault, "The category was deleted but its reviews could not be removed.", err)
	}

	actorID := actor.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "delete_category", &actorID, &id, "category",
		fmt.Sprintf("cascaded %d products, %d reviews", productsRemoved, reviewsRemoved))

	s.log.Info("Category deleted",
		zap.String("category_id", categoryID),
		zap.String("deleted_by", actor.ID.String()),
		zap.Int64("products_removed", productsRemoved),
		zap.Int64("reviews_removed", reviewsRemoved))

	return nil
}
