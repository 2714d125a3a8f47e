package usecase

import (
	"context"
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

type ReviewService interface {
	ListProductReviews(ctx context.Context, productID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	// GetOwnReview is the pre-flight "have I reviewed this?" check.
	GetOwnReview(ctx context.Context, actor *token.Identity, productID string) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, actor *token.Identity, productID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, actor *token.Identity, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor *token.Identity, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListProductReviews(ctx context.Context, productID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	reviews, err := s.repo.Review.FindByProductID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	total, err := s.repo.Review.CountByProductID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	authors := s.authorNames(ctx, reviews)

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, authors[review.CreatedBy])
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetOwnReview(ctx context.Context, actor *token.Identity, productID string) (*response.ReviewResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	review, err := s.repo.Review.FindByUserAndProduct(ctx, actor.ID, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if review == nil {
		return nil, apperr.New(apperr.NotFound, "You have not reviewed this product.")
	}

	resp := response.ReviewToResponse(review, actor.FullName)
	return &resp, nil
}

// CreateReview posts a review. The advisory lookup gives a friendly
// conflict early; the unique index catches the race a concurrent
// request could win in between.
func (s *reviewService) CreateReview(ctx context.Context, actor *token.Identity, productID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
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

	existing, err := s.repo.Review.FindByUserAndProduct(ctx, actor.ID, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "You have already reviewed this product.")
	}

	now := time.Now()
	actorID := actor.ID
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID: id,
		Rating:    req.Rating,
		Message:   req.Message,
		CreatedBy: actorID,
		UpdatedBy: &actorID,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "You have already reviewed this product.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not create the review.", err)
	}

	rid := review.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "create_review", &actorID, &rid, "review", "")

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("product_id", productID),
		zap.Int("rating", req.Rating))

	resp := response.ReviewToResponse(review, actor.FullName)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor *token.Identity, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if review == nil {
		return nil, apperr.New(apperr.NotFound, "Review does not exist.")
	}

	decision := policy.CanActOnReview(policy.Actor{ID: actor.ID, Role: actor.Role}, review, policy.ActionEdit)
	if !decision.Allowed {
		return nil, apperr.New(apperr.Forbidden, decision.Reason)
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Message != nil {
		review.Message = *req.Message
	}
	actorID := actor.ID
	review.UpdatedBy = &actorID
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "Could not update the review.", err)
	}

	recordAudit(ctx, s.repo.AuditLog, s.log, "update_review", &actorID, &id, "review", "")

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("updated_by", actor.ID.String()))

	resp := response.ReviewToResponse(review, s.authorName(ctx, review.CreatedBy))
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor *token.Identity, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if review == nil {
		return apperr.New(apperr.NotFound, "Review does not exist.")
	}

	decision := policy.CanActOnReview(policy.Actor{ID: actor.ID, Role: actor.Role}, review, policy.ActionDelete)
	if !decision.Allowed {
		return apperr.New(apperr.Forbidden, decision.Reason)
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.ServerFault, "Could not delete the review.", err)
	}

	actorID := actor.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "delete_review", &actorID, &id, "review", "")

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("deleted_by", actor.ID.String()))

	return nil
}

// authorName resolves a display name for a review author; deleted
// accounts render as an empty string.
func (s *reviewService) authorName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.FullName()
}

// authorNames resolves display names for all review authors in a
// single repository call. Deleted accounts are missing from the map
// and render as an empty string.
func (s *reviewService) authorNames(ctx context.Context, reviews []*entity.Review) map[uuid.UUID]string {
	seen := make(map[uuid.UUID]bool, len(reviews))
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, review := range reviews {
		if !seen[review.CreatedBy] {
			seen[review.CreatedBy] = true
			ids = append(ids, review.CreatedBy)
		}
	}

	users, err := s.repo.User.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("Failed to resolve review authors", zap.Error(err))
		return nil
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.FullName()
	}
	return names
}
