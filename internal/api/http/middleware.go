package http

import (
	"context"
	"net/http"
	"strings"

	"reelstudio-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware validates the bearer token on back-office routes and
// puts the caller's user id on the request context. Public share-token
// routes are registered outside this middleware.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, or 0 when absent.
func UserIDFromContext(ctx context.Context) int32 {
	id, _ := ctx.Value(userIDKey).(int32)
	return id
}
