package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/C4ndyFl4mes/dt207g-project/internal/apperr"
	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/request"
	"github.com/C4ndyFl4mes/dt207g-project/internal/dto/response"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/token"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubUserService returns a fixed error from every operation so the
// handler's status mapping can be asserted per error kind.
type stubUserService struct {
	err error
}

func (s *stubUserService) ListUsers(context.Context, *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	return nil, s.err
}

func (s *stubUserService) GetUser(context.Context, *token.Identity, string) (*response.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.UserResponse{ID: uuid.NewString()}, nil
}

func (s *stubUserService) UpdateUser(context.Context, *token.Identity, string, *request.UpdateUserRequest) (*response.UserResponse, error) {
	return nil, s.err
}

func (s *stubUserService) DeleteUser(context.Context, *token.Identity, string) error {
	return s.err
}

func doGetUser(t *testing.T, svcErr error) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewUserHandler(&stubUserService{err: svcErr}, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/users/{id}", handler.GetUser)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+uuid.NewString(), nil)
	identity := &token.Identity{ID: uuid.New(), Role: entity.RoleAdmin}
	req = req.WithContext(utils.SetIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"forbidden", apperr.New(apperr.Forbidden, "denied"), http.StatusForbidden},
		{"not found", apperr.New(apperr.NotFound, "missing"), http.StatusNotFound},
		{"malformed id", apperr.New(apperr.MalformedIdentifier, "bad id"), http.StatusBadRequest},
		{"validation", apperr.New(apperr.ValidationFailed, "bad input"), http.StatusBadRequest},
		{"conflict", apperr.New(apperr.Conflict, "duplicate"), http.StatusConflict},
		{"invalid credential", apperr.New(apperr.InvalidCredential, "bad login"), http.StatusForbidden},
		{"unauthenticated", apperr.New(apperr.Unauthenticated, "no token"), http.StatusUnauthorized},
		{"server fault", apperr.New(apperr.ServerFault, "boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGetUser(t, tt.err)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var body utils.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success != (tt.err == nil) {
				t.Errorf("success = %v", body.Success)
			}
		})
	}
}

// Untyped errors never leak their detail to clients.
func TestUntypedErrorStaysGeneric(t *testing.T) {
	rec := doGetUser(t, context.DeadlineExceeded)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body utils.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Errorf("message = %q leaked internal detail", body.Message)
	}
}

func TestUpdateUserRejectsBadBody(t *testing.T) {
	handler := NewUserHandler(&stubUserService{}, zap.NewNop())

	r := chi.NewRouter()
	r.Put("/api/users/{id}", handler.UpdateUser)

	req := httptest.NewRequest(http.MethodPut, "/api/users/"+uuid.NewString(),
		strings.NewReader("{not json"))
	identity := &token.Identity{ID: uuid.New(), Role: entity.RoleAdmin}
	req = req.WithContext(utils.SetIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
