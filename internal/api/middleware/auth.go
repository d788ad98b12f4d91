package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/netpulse/netpulse/internal/auth"
	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
	// UserRoleKey is the context key for user role
	UserRoleKey ContextKey = "role"
)

// AuthMiddleware returns a middleware that validates JWT tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenStr = parts[1]
				}
			} else if cookie, err := r.Cookie("accessToken"); err == nil {
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that rejects requests whose token
// does not carry the given role. It must run after AuthMiddleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, _ := GetUserRole(r); got != role {
				utils.WriteError(w, errors.Forbidden("Insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the authenticated user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(UserIDKey).(int64)
	return id, ok
}

// GetUserEmail extracts the authenticated user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRole extracts the authenticated user role from the request context
func GetUserRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(UserRoleKey).(string)
	return role, ok
}
