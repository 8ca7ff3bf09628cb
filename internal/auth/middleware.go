// internal/auth/middleware.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ingStudiosOfficial/supereddit/internal/models"
)

// Define a custom context key type to avoid collisions
type contextKey string

const userKey contextKey = "user"

// SetUserInContext saves the resolved user in the request context.
func SetUserInContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the logged-in user from the context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// WithUser resolves the session cookie and attaches the user to the request
// context when present. Anonymous and invalid-session requests pass through
// untouched; identity-gated handlers sit behind RequireAuth instead.
func (s *Sessions) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Resolve(r.Context(), r)
		if err == nil && user != nil {
			r = r.WithContext(SetUserInContext(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests with no attached identity before any handler
// work happens.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "Unauthorized",
				"message": "You must be logged in to perform this action",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
