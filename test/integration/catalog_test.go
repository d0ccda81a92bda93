//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_AdminGatedMutations(t *testing.T) {
	server, _, _ := newTestServer(t)

	register(t, server.URL, "alice", "a@x.com", "pw123456")
	userToken := login(t, server.URL, "alice", "pw123456")
	adminToken := login(t, server.URL, "admin", "admin123")

	payload := map[string]any{
		"name":     "T-Shirt",
		"price":    19.99,
		"quantity": 10,
	}

	// No token: 401.
	resp, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/products", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "UNAUTHORIZED", parsed.Error.Code)

	// Authenticated non-admin: 403.
	resp, parsed = doJSON(t, http.MethodPost, server.URL+"/api/v1/products", payload, userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "FORBIDDEN", parsed.Error.Code)

	// Admin: 201 with the created record.
	resp, parsed = doJSON(t, http.MethodPost, server.URL+"/api/v1/products", payload, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		CreatedBy string  `json:"created_by"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &created))
	assert.Equal(t, "T-Shirt", created.Name)
	assert.Equal(t, 19.99, created.Price)
	assert.NotEmpty(t, created.CreatedBy)

	// Reads stay public.
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/products/"+created.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProducts_PartialUpdate(t *testing.T) {
	server, _, _ := newTestServer(t)
	adminToken := login(t, server.URL, "admin", "admin123")

	_, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/products", map[string]any{
		"name": "Mug", "description": "ceramic", "price": 9.99, "quantity": 3,
	}, adminToken)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &created))

	// Empty patch: 400.
	resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/v1/products/"+created.ID, map[string]any{}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Single-field patch leaves the rest untouched.
	resp, parsed = doJSON(t, http.MethodPut, server.URL+"/api/v1/products/"+created.ID, map[string]any{
		"price": 12.50,
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Quantity    int     `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &updated))
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, "Mug", updated.Name)
	assert.Equal(t, "ceramic", updated.Description)
	assert.Equal(t, 3, updated.Quantity)
}

func TestProducts_Delete(t *testing.T) {
	server, _, _ := newTestServer(t)
	adminToken := login(t, server.URL, "admin", "admin123")

	_, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/products", map[string]any{
		"name": "Mug", "price": 9.99,
	}, adminToken)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &created))

	resp, _ := doJSON(t, http.MethodDelete, server.URL+"/api/v1/products/"+created.ID, nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/products/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/products/"+created.ID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMerch_SameGateAsProducts(t *testing.T) {
	server, _, _ := newTestServer(t)

	register(t, server.URL, "bob", "b@x.com", "pw123456")
	userToken := login(t, server.URL, "bob", "pw123456")
	adminToken := login(t, server.URL, "admin", "admin123")

	payload := map[string]any{"name": "Cap", "price": 14.99, "size": "M"}

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/merch", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/merch", payload, userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/merch", payload, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID   string `json:"id"`
		Size string `json:"size"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &created))
	assert.Equal(t, "M", created.Size)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/merch", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNews_PublicReadsGatedWrites(t *testing.T) {
	server, _, _ := newTestServer(t)

	register(t, server.URL, "carol", "c@x.com", "pw123456")
	userToken := login(t, server.URL, "carol", "pw123456")
	adminToken := login(t, server.URL, "admin", "admin123")

	payload := map[string]any{"title": "Launch", "content": "We shipped."}

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/news", payload, userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/news", payload, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &created))

	// The feed is public.
	resp, parsed = doJSON(t, http.MethodGet, server.URL+"/api/v1/news", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var articles []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "Launch", articles[0].Title)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/news/"+created.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMutation_InvalidTokenCollapsesTo403(t *testing.T) {
	server, _, _ := newTestServer(t)

	payload := map[string]any{"name": "Mug", "price": 9.99}

	for _, token := range []string{"garbage", "a.b.c"} {
		resp, parsed := doJSON(t, http.MethodPost, server.URL+"/api/v1/products", payload, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		require.NotNil(t, parsed.Error)
		assert.Equal(t, "INVALID_TOKEN", parsed.Error.Code)
	}
}
