package middleware

import (
	"context"
	"net/http"
	"strings"

	"log/slog"

	"github.com/rileysklar/BookNook/internal/auth"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// UserID returns the authenticated user id stored by Auth, or "" for an
// unauthenticated request.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user id the same way
// Auth stores it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth validates the Authorization bearer token and stores the subject in
// the request context. Requests without a valid token get 401; handlers
// behind this middleware can rely on UserID being non-empty.
func Auth(tokens *auth.TokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Warn("token rejected", slog.Any("error", err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// OptionalAuth stores the subject when a valid token is present but lets
// anonymous requests through. Used on read endpoints that personalize but
// do not require login.
func OptionalAuth(tokens *auth.TokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if ok && token != "" {
				if claims, err := tokens.Parse(token); err == nil {
					r = r.WithContext(WithUserID(r.Context(), claims.UserID))
				} else {
					logger.Debug("optional token rejected", slog.Any("error", err))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
