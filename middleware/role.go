package middleware

import (
	"context"
	"net/http"

	"github.com/bookcourier/backend/models"
)

// RoleLookup reads the stored role for a principal. *store.DB satisfies it.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireRole gates a route on the principal's stored role. Must run after
// Auth. The role is re-read from the store on every request so role changes
// take effect immediately.
func RequireRole(roles RoleLookup, role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			got, err := roles.RoleByEmail(r.Context(), email)
			if err != nil {
				http.Error(w, `{"error":"failed to check role"}`, http.StatusInternalServerError)
				return
			}
			if got != role {
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(roles RoleLookup) func(next http.Handler) http.Handler {
	return RequireRole(roles, models.RoleAdmin)
}

func RequireLibrarian(roles RoleLookup) func(next http.Handler) http.Handler {
	return RequireRole(roles, models.RoleLibrarian)
}
