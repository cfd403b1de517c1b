package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ethicsaudit/pkg/requestcontext"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
	seen   string
}

func (v *stubValidator) ValidateToken(token string) (*JWTClaims, error) {
	v.seen = token
	return v.claims, v.err
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	var gotUser uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("bearer token sets user id", func(t *testing.T) {
		v := &stubValidator{claims: &JWTClaims{UserID: userID.String()}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rr := httptest.NewRecorder()

		RequireAuth(v, newLogger())(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "abc", v.seen)
		assert.Equal(t, userID, gotUser)
	})

	t.Run("session cookie is accepted", func(t *testing.T) {
		v := &stubValidator{claims: &JWTClaims{UserID: userID.String()}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		rr := httptest.NewRecorder()

		RequireAuth(v, newLogger())(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "cookie-token", v.seen)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireAuth(&stubValidator{}, newLogger())(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`, rr.Body.String())
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		v := &stubValidator{err: errors.New("expired")}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rr := httptest.NewRecorder()

		RequireAuth(v, newLogger())(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non uuid subject is rejected", func(t *testing.T) {
		v := &stubValidator{claims: &JWTClaims{UserID: "alice"}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rr := httptest.NewRecorder()

		RequireAuth(v, newLogger())(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
