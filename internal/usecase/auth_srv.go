package usecase

import (
	"context"
	"time"

	"github.com/C4ndyFl4mes/dt207g-project/internal/apperr"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/repository"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/request"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/response"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/token"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	// CreateAdmin is reachable by root only; the new account always
	// gets the admin role.
	CreateAdmin(ctx context.Context, actor *token.Identity, req *request.CreateAdminRequest) (*response.UserResponse, error)
	// EnsureRoot seeds the single root account on first start.
	EnsureRoot(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register self-registers an account. The role is always user; there is
// no way to request anything else through this path.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	// Advisory fast path; the unique index on email is the real guard.
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "Email is already registered.")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Email is already registered.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not create the account.", err)
	}

	signed, expiresAt, err := token.Issue(user, s.config.JWT.Secret)
	if err != nil {
		s.log.Error("Failed to issue token after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	uid := user.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "register", &uid, &uid, "user", "")

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, signed, expiresAt)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	// Same message for unknown email and wrong password.
	if user == nil || !utils.CheckPassword(req.Password, user.PasswordHash) {
		s.log.Warn("Failed login attempt", zap.String("email", req.Email))
		return nil, apperr.New(apperr.InvalidCredential, "Incorrect email or password.")
	}

	signed, expiresAt, err := token.Issue(user, s.config.JWT.Secret)
	if err != nil {
		s.log.Error("Failed to issue token",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, signed, expiresAt)
	return &resp, nil
}

func (s *authService) CreateAdmin(ctx context.Context, actor *token.Identity, req *request.CreateAdminRequest) (*response.UserResponse, error) {
	if actor == nil || actor.Role != entity.RoleRoot {
		return nil, apperr.New(apperr.Forbidden, "Only root may create admin accounts.")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.ValidationFailed, utils.FormatValidationErrors(errs))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.ServerFault, "A server error occurred.", err)
	}

	now := time.Now()
	actorID := actor.ID
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Audit: entity.Audit{
			CreatedBy: &actorID,
			UpdatedBy: &actorID,
		},
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleAdmin,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperr.New(apperr.Conflict, "Email is already registered.")
		}
		return nil, apperr.Wrap(apperr.ServerFault, "Could not create the account.", err)
	}

	uid := user.ID
	recordAudit(ctx, s.repo.AuditLog, s.log, "create_admin", &actorID, &uid, "user", user.Email)

	s.log.Info("Admin account created",
		zap.String("user_id", user.ID.String()),
		zap.String("created_by", actor.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// EnsureRoot creates the root account from config when no root exists
// yet. The root account is permanent: nothing can delete or demote it
// afterwards.
func (s *authService) EnsureRoot(ctx context.Context) error {
	count, err := s.repo.User.CountByRole(ctx, entity.RoleRoot)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.config.Root.Email == "" || s.config.Root.Password == "" {
		s.log.Warn("No root account exists and ROOT_EMAIL/ROOT_PASSWORD are unset")
		return nil
	}

	hashedPassword, err := utils.HashPassword(s.config.Root.Password)
	if err != nil {
		return err
	}

	now := time.Now()
	root := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Firstname:    s.config.Root.Firstname,
		Lastname:     s.config.Root.Lastname,
		Email:        s.config.Root.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleRoot,
	}

	if err := s.repo.User.Create(ctx, root); err != nil {
		return err
	}

	s.log.Info("Root account seeded", zap.String("user_id", root.ID.String()))
	return nil
}
