package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	email string
	err   error
	calls int
}

func (s *stubVerifier) VerifyToken(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.email, nil
}

func authProbe(t *testing.T, v *stubVerifier, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seenEmail string
	handler := Auth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail, _ = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/my-orders", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seenEmail
}

func TestAuth(t *testing.T) {
	t.Run("missing header fails without calling the verifier", func(t *testing.T) {
		v := &stubVerifier{email: "a@b.com"}
		rec, _ := authProbe(t, v, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, v.calls)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		v := &stubVerifier{email: "a@b.com"}
		rec, _ := authProbe(t, v, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, v.calls)
	})

	t.Run("verification failure propagates the error detail", func(t *testing.T) {
		v := &stubVerifier{err: errors.New("token expired")}
		rec, _ := authProbe(t, v, "Bearer bad-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "token expired")
		assert.Equal(t, 1, v.calls)
	})

	t.Run("valid token binds the email to the context", func(t *testing.T) {
		v := &stubVerifier{email: "reader@example.com"}
		rec, email := authProbe(t, v, "Bearer good-token")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "reader@example.com", email)
	})
}

func TestEmailFromContextAbsent(t *testing.T) {
	_, ok := EmailFromContext(context.Background())
	assert.False(t, ok)
}
