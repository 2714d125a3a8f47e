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

type UserService interface {
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, actor *token.Identity, userID string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, actor *token.Identity, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, actor *token.Identity, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

func (s *userService) GetUser(ctx context.Context, actor *token.Identity, userID string) (*response.UserResponse, error) {
	targetID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "User does not exist.")
	}

	// Regular users may only look up themselves.
	if actor.Role == entity.RoleUser && actor.ID != user.ID {
		return nil, apperr.New(apperr.Forbidden, "You may only view your own account.")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor *token.Identity, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	targetID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "User does not exist.")
	}

	decision := policy.CanActOnUser(policy.Actor{ID: actor.ID, Role: actor.Role}, user, policy.ActionEdit)
	if !decision.Allowed {
		return nil, apperr.New(apperr.Forbidden, decision.Reason)
	}

	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	actorID := actor.ID
	user.UpdatedBy = &actorID
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Email is already registered.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not update the user.", err)
	}

	recordAudit(ctx, s.repo.AuditLog, s.log, "update_user", &actorID, &targetID, "user", "")

	s.log.Info("User updated",
		zap.String("user_id", userID),
		zap.String("updated_by", actor.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// DeleteUser removes an account and cascades to the reviews that
// account authored. Products and categories the account created stay;
// createdBy is provenance, not ownership.
func (s *userService) DeleteUser(ctx context.Context, actor *token.Identity, userID string) error {
	targetID, err := uuid.Parse(userID)
	if err != nil {
		return apperr.New(apperr.MalformedIdentifier, "Invalid ID format.")
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if user == nil {
		return apperr.New(apperr.NotFound, "User does not exist.")
	}

	decision := policy.CanActOnUser(policy.Actor{ID: actor.ID, Role: actor.Role}, user, policy.ActionDelete)
	if !decision.Allowed {
		return apperr.New(apperr.Forbidden, decision.Reason)
	}

	if err := s.repo.User.Delete(ctx, targetID); err != nil {
		return apperr.Wrap(apperr.ServerFault, "Could not delete the user.", err)
	}

	// Best effort after the primary delete: a failure here is surfaced
	// but the account stays gone.
	removed, err := s.repo.Review.DeleteByUserID(ctx, targetID)
	if err != nil {
		s.log.Error("User deleted but review cascade failed",
			zap.Error(err),
			zap.String("user_id", userID))
		return apperr.Wrap(apperr.ServerFault, "The user was deleted but their reviews could not be removed.", err)
	}

	actorID := actor.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "delete_user", &actorID, &targetID, "user",
		fmt.Sprintf("cascaded %d reviews", removed))

	s.log.Info("User deleted",
		zap.String("user_id", userID),
		zap.String("deleted_by", actor.ID.String()),
		zap.Int64("reviews_removed", removed))

	return nil
}
