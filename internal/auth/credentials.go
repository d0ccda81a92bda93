package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-storefront/internal/model"
	"go-storefront/pkg/apierror"
)

const (
	DefaultTokenTTL   = time.Hour
	DefaultBcryptCost = 12
)

// Credentials is the credential manager: bcrypt password hashing and
// verification plus HS256 session token issuance and parsing. It holds no
// state beyond the signing secret, which is read-only after construction.
type Credentials struct {
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewCredentials(secret string, tokenTTL time.Duration, bcryptCost int) (*Credentials, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}

	return &Credentials{
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}, nil
}

func (c *Credentials) TokenTTL() time.Duration {
	return c.tokenTTL
}

// HashPassword produces a salted bcrypt hash. Two calls with the same
// plaintext yield different outputs; equality is established only through
// VerifyPassword.
func (c *Credentials) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (c *Credentials) VerifyPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a session token for the given subject. Expiry is fixed at
// issuance + TTL; there is no revocation, a token stays valid until it
// expires.
func (c *Credentials) IssueToken(userID string, isAdmin bool) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(c.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"admin": isAdmin,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ParseToken verifies signature and expiry and decodes the claims. Malformed,
// tampered and expired tokens all collapse into the same invalid-token error.
func (c *Credentials) ParseToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.New("INVALID_TOKEN", "invalid or expired token", "", http.StatusForbidden)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("INVALID_TOKEN", "invalid token claims", "", http.StatusForbidden)
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.IsAdmin, _ = claimsMap["admin"].(bool)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" {
		return nil, apierror.New("INVALID_TOKEN", "invalid token subject", "", http.StatusForbidden)
	}

	return claims, nil
}
