//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	server, _, _ := newTestServer(t)

	register(t, server.URL, "alice", "a@x.com", "pw123")
	token := login(t, server.URL, "alice", "pw123")

	resp, parsed := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		IsAdmin  bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &me))
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "a@x.com", me.Email)
	assert.False(t, me.IsAdmin)
}

func TestLogin_BadCredentialsAreGeneric(t *testing.T) {
	server, _, _ := newTestServer(t)
	register(t, server.URL, "alice", "a@x.com", "pw1234")

	wrongPassResp, wrongPass := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "nope",
	}, "")
	unknownResp, unknown := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", map[string]string{
		"username": "mallory", "password": "pw1234",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
	require.NotNil(t, wrongPass.Error)
	require.NotNil(t, unknown.Error)
	assert.Equal(t, wrongPass.Error.Message, unknown.Error.Message)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	server, _, _ := newTestServer(t)
	register(t, server.URL, "alice", "a@x.com", "pw1234")

	resp, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", map[string]string{
		"username": "alice", "email": "other@x.com", "password": "pw1234",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "ALREADY_EXISTS", parsed.Error.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, parsed := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "UNAUTHORIZED", parsed.Error.Code)
}

func TestMe_RejectsExpiredToken(t *testing.T) {
	server, _, admin := newTestServer(t)

	// An otherwise well-formed token signed with the right secret but
	// already expired must be rejected.
	expired := makeExpiredToken(t, "test-secret", admin.ID)

	resp, parsed := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/me", nil, expired)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "INVALID_TOKEN", parsed.Error.Code)
}

func TestMe_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	server, _, admin := newTestServer(t)

	forged := makeTokenWithSecret(t, "attacker-secret", admin.ID, true, time.Hour)

	resp, parsed := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/me", nil, forged)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "INVALID_TOKEN", parsed.Error.Code)
}
