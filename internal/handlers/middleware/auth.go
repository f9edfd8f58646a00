package middleware

import (
	"context"
	"net/http"

	"github.com/employerapp/api/internal/handlers/render"
	"github.com/employerapp/api/internal/handlers/userctx"
	"github.com/employerapp/api/internal/models"
)

type authService interface {
	// Authenticate request, usually by its bearer access token
	Auth(ctx context.Context, r *http.Request) (models.User, error)
}

type AuthMiddleware struct {
	authService authService
}

func NewAuth(as authService) *AuthMiddleware {
	return &AuthMiddleware{authService: as}
}

// Auth rejects the request with 401 unless the auth service recognizes it
// The authenticated user is stored in the request context
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authService.Auth(r.Context(), r)
		if err != nil {
			render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := userctx.New(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
