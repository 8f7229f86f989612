package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookcourier/backend/models"
	"github.com/stretchr/testify/assert"
)

type fakeRoles struct {
	roles map[string]string
	err   error
}

func (f *fakeRoles) RoleByEmail(_ context.Context, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.roles[email], nil
}

func roleProbe(t *testing.T, lookup RoleLookup, role, email string) *httptest.ResponseRecorder {
	t.Helper()
	var called bool
	handler := RequireRole(lookup, role)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/all-books", nil)
	if email != "" {
		req = req.WithContext(context.WithValue(req.Context(), emailKey, email))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		assert.False(t, called, "handler must not run on a denied request")
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	lookup := &fakeRoles{roles: map[string]string{
		"admin@example.com":     models.RoleAdmin,
		"librarian@example.com": models.RoleLibrarian,
		"reader@example.com":    models.RoleUser,
	}}

	t.Run("no bound principal is unauthorized", func(t *testing.T) {
		rec := roleProbe(t, lookup, models.RoleAdmin, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		rec := roleProbe(t, lookup, models.RoleAdmin, "reader@example.com")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown user is forbidden", func(t *testing.T) {
		rec := roleProbe(t, lookup, models.RoleAdmin, "ghost@example.com")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role continues", func(t *testing.T) {
		rec := roleProbe(t, lookup, models.RoleLibrarian, "librarian@example.com")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("lookup failure is a server error", func(t *testing.T) {
		rec := roleProbe(t, &fakeRoles{err: errors.New("store down")}, models.RoleAdmin, "admin@example.com")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
