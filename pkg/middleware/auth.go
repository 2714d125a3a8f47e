package middleware

import (
	"net/http"
	"strings"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/token"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"go.uber.org/zap"
)

// Authorize verifies the bearer credential and checks the caller's role
// against the allow-list. On success the verified identity is placed in
// the request context for handlers. The gate never touches storage.
//
// Missing credential -> 401. Bad or expired credential -> 403.
// Role not in the allow-list -> 403.
func Authorize(secret string, logger *zap.Logger, allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	allowed := make(map[entity.Role]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			identity, err := token.Verify(parts[1], secret)
			if err != nil {
				logger.Warn("Rejected credential",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method))
				utils.ResponseForbidden(w, "Invalid or expired token")
				return
			}

			if _, ok := allowed[identity.Role]; !ok {
				logger.Warn("Insufficient role",
					zap.String("user_id", identity.ID.String()),
					zap.String("role", string(identity.Role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied: insufficient permissions")
				return
			}

			ctx := utils.SetIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
