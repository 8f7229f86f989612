package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bookcourier/backend/service"
)

type contextKey string

const emailKey contextKey = "userEmail"

// Auth extracts the bearer token, verifies it against the identity provider
// and binds the verified email to the request context. Missing token fails
// without calling the verifier; a verification failure is terminal for the
// request and carries the underlying error detail.
func Auth(verifier service.Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}
			email, err := verifier.VerifyToken(r.Context(), parts[1])
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":  "unauthorized",
					"detail": err.Error(),
				})
				return
			}
			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the verified principal bound by Auth.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}
