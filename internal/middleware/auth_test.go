package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/model"
)

type stubParser struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubParser) ParseToken(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T, wantClaims *model.AuthClaims) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantClaims != nil {
			claims, ok := ClaimsFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, wantClaims.UserID, claims.UserID)
			assert.Equal(t, wantClaims.IsAdmin, claims.IsAdmin)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&stubParser{claims: &model.AuthClaims{UserID: "u1"}})
	handler := mw.RequireAuth(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestRequireAuth_NonBearerScheme(t *testing.T) {
	mw := NewAuthMiddleware(&stubParser{claims: &model.AuthClaims{UserID: "u1"}})
	handler := mw.RequireAuth(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubParser{err: errors.New("bad signature")})
	handler := mw.RequireAuth(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tampered-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Malformed, tampered and expired tokens all collapse into one 403.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	claims := &model.AuthClaims{UserID: "user-1", IsAdmin: true}
	mw := NewAuthMiddleware(&stubParser{claims: claims})
	handler := mw.RequireAuth(okHandler(t, claims))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_NonAdminForbidden(t *testing.T) {
	claims := &model.AuthClaims{UserID: "user-1", IsAdmin: false}
	mw := NewAuthMiddleware(&stubParser{claims: claims})
	handler := mw.RequireAuth(mw.RequireAdmin(okHandler(t, nil)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	claims := &model.AuthClaims{UserID: "admin-1", IsAdmin: true}
	mw := NewAuthMiddleware(&stubParser{claims: claims})
	handler := mw.RequireAuth(mw.RequireAdmin(okHandler(t, claims)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_WithoutAuthContext(t *testing.T) {
	mw := NewAuthMiddleware(&stubParser{})
	handler := mw.RequireAdmin(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
