package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-storefront/internal/model"
)

type tokenParser interface {
	ParseToken(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

// AuthMiddleware is the access gate: RequireAuth verifies the bearer token
// and attaches the decoded claims to the request context; RequireAdmin then
// checks the admin flag. Every request is re-authenticated independently.
type AuthMiddleware struct {
	parser tokenParser
}

func NewAuthMiddleware(parser tokenParser) *AuthMiddleware {
	return &AuthMiddleware{parser: parser}
}

// RequireAuth rejects requests without a bearer token (401) and requests
// whose token fails verification (403, one collapsed error for malformed,
// tampered and expired tokens alike).
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeGateError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authorization required")
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.parser.ParseToken(token)
		if err != nil {
			writeGateError(w, http.StatusForbidden, "INVALID_TOKEN", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth. 401 means "prove who you are",
// 403 means "you proved it, but you may not do this".
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeGateError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		if !claims.IsAdmin {
			writeGateError(w, http.StatusForbidden, "FORBIDDEN", "admin privileges required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func writeGateError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
