package adaptor

import (
	"net/http"

	"github.com/C4ndyFl4mes/dt207g-project/internal/apperr"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/request"
	"github.com/C4ndyFl4mes/dt207g-project/internal/usecase"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Product  *ProductHandler
	Review   *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Product:  NewProductHandler(service.Product, log),
		Review:   NewReviewHandler(service.Review, log),
	}
}

// renderError maps a service failure to its HTTP status and renders the
// canonical envelope. Untyped errors fall through as server faults with
// a generic message; their detail stays in the log.
func renderError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := apperr.KindOf(err)
	message := apperr.MessageOf(err)

	switch kind {
	case apperr.Unauthenticated:
		log.Warn(operation+" rejected: no credential", zap.Error(err))
		utils.ResponseUnauthorized(w, message)
	case apperr.InvalidCredential:
		log.Warn(operation+" rejected: invalid credential", zap.Error(err))
		utils.ResponseForbidden(w, message)
	case apperr.Forbidden:
		log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseForbidden(w, message)
	case apperr.NotFound:
		utils.ResponseNotFound(w, message)
	case apperr.MalformedIdentifier, apperr.ValidationFailed:
		utils.ResponseBadRequest(w, message, nil)
	case apperr.Conflict:
		utils.ResponseConflict(w, message)
	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parsePagination reads page and limit query parameters with their defaults.
func parsePagination(r *http.Request) *request.PaginatedRequest {
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("limit"), 10),
	}
}
