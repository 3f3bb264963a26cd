package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/campusbook/appointments/internal/domain"
	"github.com/campusbook/appointments/internal/http/response"
	"github.com/campusbook/appointments/pkg/auth"
	"github.com/campusbook/appointments/pkg/logger"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFinder resolves a token subject against the store of record.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAuth verifies the bearer token and re-reads the user from the
// store. The role embedded in the token is never used for authorization, so
// a role change takes effect on the next request rather than at token
// expiry.
func RequireAuth(secret string, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(authz, "Bearer "), secret)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			user, err := users.FindByID(r.Context(), claims.Sub)
			if err != nil {
				response.InternalError(w, "Failed to resolve user")
				return
			}
			if user == nil {
				response.Unauthorized(w, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, user)
			ctx = context.WithValue(ctx, logger.UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group on the store-resolved role. Must run
// after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := User(r)
			if user == nil {
				response.Unauthorized(w, "Unauthorized")
				return
			}
			if user.Role != role {
				response.Forbidden(w, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// User returns the authenticated user placed in the context by RequireAuth.
func User(r *http.Request) *domain.User {
	if user, ok := r.Context().Value(ctxUser).(*domain.User); ok {
		return user
	}
	return nil
}
