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

type ProductService interface {
	ListProducts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	ListProductsInCategory(ctx context.Context, categoryName string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProduct(ctx context.Context, categoryName, productName string) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, actor *token.Identity, req *request.CreateProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, actor *token.Identity, productID string, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, actor *token.Identity, productID string) error
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) ListProducts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	products, err := s.repo.Product.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	total, err := s.repo.Product.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	productResponses, err := s.buildResponses(ctx, products)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(productResponses, req.Page, req.Limit(), total), nil
}

func (s *productService) ListProductsInCategory(ctx context.Context, categoryName string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	category, err := s.repo.Category.FindByName(ctx, categoryName)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if category == nil {
		return nil, apperr.New(apperr.NotFound, "Category does not exist.")
	}

	products, err := s.repo.Product.FindByCategoryID(ctx, category.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	total, err := s.repo.Product.CountByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	productResponses, err := s.buildResponses(ctx, products)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(productResponses, req.Page, req.Limit(), total), nil
}

// GetProduct resolves both levels by display name or slug.
func (s *productService) GetProduct(ctx context.Context, categoryName, productName string) (*response.ProductResponse, error) {
	category, err := s.repo.Category.FindByName(ctx, categoryName)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if category == nil {
		return nil, apperr.New(apperr.NotFound, "Category or product does not exist.")
	}

	product, err := s.repo.Product.FindByCategoryAndName(ctx, category.ID, productName)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if product == nil {
		return nil, apperr.New(apperr.NotFound, "Category or product does not exist.")
	}

	avgRating, err := s.repo.Review.AverageRating(ctx, product.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	resp := response.ProductToResponse(product, avgRating)
	return &resp, nil
}

func (s *productService) CreateProduct(ctx context.Context, actor *token.Identity, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	decision := policy.CanManageCatalog(policy.Actor{ID: actor.ID, Role: actor.Role})
	if !decision.Allowed {
		return nil, apperr.New(apperr.Forbidden, decision.Reason)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	actorID := actor.ID
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Audit: entity.Audit{
			CreatedBy: &actorID,
			UpdatedBy: &actorID,
		},
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Price:       req.Price,
		Description: req.Description,
		OnSale:      req.OnSale,
		Sale:        req.Sale,
		CategoryID:  category.ID,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Product already exists in this category.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not create the product.", err)
	}

	pid := product.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "create_product", &actorID, &pid, "product", product.Name)

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.String("category_id", category.ID.String()),
		zap.String("created_by", actor.ID.String()))

	resp := response.ProductToResponse(product, 0)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, actor *token.Identity, productID string, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	decision := policy.CanManageCatalog(policy.Actor{ID: actor.ID, Role: actor.Role})
	if !decision.Allowed {
		return nil, apperr.New(apperr.Forbidden, decision.Reason)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if product == nil {
		return nil, apperr.New(apperr.NotFound, "Product does not exist.")
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Slug = utils.Slugify(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.OnSale != nil {
		product.OnSale = *req.OnSale
	}
	if req.Sale != nil {
		product.Sale = req.Sale
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
	}

	actorID := actor.ID
	product.UpdatedBy = &actorID
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Product already exists in this category.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not update the product.", err)
	}

	recordAudit(ctx, s.repo.AuditLog, s.log, "update_product", &actorID, &id, "product", product.Name)

	s.log.Info("Product updated",
		zap.String("product_id", productID),
		zap.String("updated_by", actor.ID.String()))

	avgRating, err := s.repo.Review.AverageRating(ctx, product.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	resp := response.ProductToResponse(product, avgRating)
	return &resp, nil
}

// DeleteProduct removes a product and then its reviews. No rollback:
// the product's deletion stands even if the review sweep fails.
func (s *productService) DeleteProduct(ctx context.Context, actor *token.Identity, productID string) error {
	decision := policy.CanManageCatalog(policy.Actor{ID: actor.ID, Role: actor.Role})
	if !decision.Allowed {
		return apperr.New(apperr.Forbidden, decision.Reason)
	}

	id, err := uuid.Parse(productID)
	if err != nil {
		return apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if product == nil {
		return apperr.New(apperr.NotFound, "Product does not exist.")
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.ServerFault, "Could not delete the product.", err)
	}

	reviewsRemoved, err := s.repo.Review.DeleteByProductIDs(ctx, []uuid.UUID{id})
	if err != nil {
		s.log.Error("Product deleted but review cascade failed",
			zap.Error(err),
			zap.String("product_id", productID))
		return apperr.Wrap(apperr.ServerFault, "The product was deleted but its reviews could not be removed.", err)
	}

	actorID := actor.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "delete_product", &actorID, &id, "product",
		fmt.Sprintf("cascaded %d reviews", reviewsRemoved))

	s.log.Info("Product deleted",
		zap.String("product_id", productID),
		zap.String("deleted_by", actor.ID.String()),
		zap.Int64("reviews_removed", reviewsRemoved))

	return nil
}

// resolveCategory accepts a category id, name or slug.
func (s *productService) resolveCategory(ctx context.Context, ref string) (*entity.Category, error) {
	if id, err := uuid.Parse(ref); err == nil {
		category, err := s.repo.Category.FindByID(ctx, id)
		if err != nil {
			return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
		}
		if category == nil {
			return nil, apperr.New(apperr.NotFound, "Category does not exist.")
		}
		return category, nil
	}

	category, err := s.repo.Category.FindByName(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if category == nil {
		return nil, apperr.New(apperr.NotFound, "Category does not exist.")
	}
	return category, nil
}

// buildResponses attaches a freshly computed average rating to each
// product; nothing is ever cached.
func (s *productService) buildResponses(ctx context.Context, products []*entity.Product) ([]response.ProductResponse, error) {
	productResponses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		avgRating, err := s.repo.Review.AverageRating(ctx, product.ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
		}
		productResponses[i] = response.ProductToResponse(product, avgRating)
	}
	return productResponses, nil
}
