package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCredentials(t *testing.T) *Credentials {
	t.Helper()

	// MinCost keeps the bcrypt-heavy tests fast.
	creds, err := NewCredentials("test-secret", time.Hour, 4)
	require.NoError(t, err)
	return creds
}

func TestNewCredentials_RequiresSecret(t *testing.T) {
	_, err := NewCredentials("", time.Hour, 12)
	require.Error(t, err)

	_, err = NewCredentials("   ", time.Hour, 12)
	require.Error(t, err)
}

func TestNewCredentials_Defaults(t *testing.T) {
	creds, err := NewCredentials("secret", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, creds.TokenTTL())
	assert.Equal(t, DefaultBcryptCost, creds.bcryptCost)
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	creds := newTestCredentials(t)

	hash, err := creds.HashPassword("pw123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, creds.VerifyPassword("pw123", hash))
	assert.False(t, creds.VerifyPassword("pw124", hash))
	assert.False(t, creds.VerifyPassword("", hash))
}

func TestHashPassword_SaltRandomized(t *testing.T) {
	creds := newTestCredentials(t)

	first, err := creds.HashPassword("samepassword")
	require.NoError(t, err)
	second, err := creds.HashPassword("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, creds.VerifyPassword("samepassword", first))
	assert.True(t, creds.VerifyPassword("samepassword", second))
}

func TestIssueToken_ParseRoundTrip(t *testing.T) {
	creds := newTestCredentials(t)
	userID := uuid.NewString()

	token, expiresAt, err := creds.IssueToken(userID, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := creds.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.False(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.TokenID)
}

func TestIssueToken_AdminFlagPreserved(t *testing.T) {
	creds := newTestCredentials(t)

	token, _, err := creds.IssueToken("admin-id", true)
	require.NoError(t, err)

	claims, err := creds.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	creds := newTestCredentials(t)
	other, err := NewCredentials("different-secret", time.Hour, 4)
	require.NoError(t, err)

	token, _, err := creds.IssueToken("user-1", false)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_RejectsTamperedPayload(t *testing.T) {
	creds := newTestCredentials(t)

	token, _, err := creds.IssueToken("user-1", false)
	require.NoError(t, err)

	// Re-sign the claims with the admin flag flipped but a bogus key. The
	// signature no longer matches the process secret, so parsing must fail.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	forgedString, err := forged.SignedString([]byte("attacker-key"))
	require.NoError(t, err)

	_, err = creds.ParseToken(forgedString)
	require.Error(t, err)

	// Splicing the forged payload into a legitimately signed token must also
	// fail: the signature covers the full claim set.
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forgedString, ".")
	require.Len(t, parts, 3)
	require.Len(t, forgedParts, 3)

	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = creds.ParseToken(spliced)
	require.Error(t, err)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"admin": false,
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	creds := newTestCredentials(t)
	_, err = creds.ParseToken(tokenString)
	require.Error(t, err)
}

func TestParseToken_RejectsMalformed(t *testing.T) {
	creds := newTestCredentials(t)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := creds.ParseToken(tokenString)
		assert.Error(t, err, "token %q should be rejected", tokenString)
	}
}

func TestParseToken_RejectsMissingSubject(t *testing.T) {
	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := noSub.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	creds := newTestCredentials(t)
	_, err = creds.ParseToken(tokenString)
	require.Error(t, err)
}
