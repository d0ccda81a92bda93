//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/auth"
	"go-storefront/internal/config"
	"go-storefront/internal/handler"
	"go-storefront/internal/middleware"
	"go-storefront/internal/model"
	"go-storefront/internal/router"
	"go-storefront/internal/service"
	"go-storefront/pkg/apierror"
)

// In-memory repositories standing in for the Postgres collaborator; the
// router, handlers, services, gate and credential manager are all real.

type memUserRepo struct {
	users map[string]model.User
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return model.User{}, apierror.NotFound("user not found", id)
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return model.User{}, apierror.NotFound("user not found", username)
}

func (r *memUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Create(_ context.Context, u model.User) error {
	r.users[u.ID] = u
	return nil
}

type memProductRepo struct {
	products map[string]model.Product
}

func (r *memProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (model.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return model.Product{}, apierror.NotFound("product not found", id)
}

func (r *memProductRepo) Create(_ context.Context, p model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Update(_ context.Context, id string, patch model.UpdateProductRequest) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, apierror.NotFound("product not found", id)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return p, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return apierror.NotFound("product not found", id)
	}
	delete(r.products, id)
	return nil
}

type memMerchRepo struct {
	items map[string]model.Merch
}

func (r *memMerchRepo) List(_ context.Context) ([]model.Merch, error) {
	out := make([]model.Merch, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	return out, nil
}

func (r *memMerchRepo) FindByID(_ context.Context, id string) (model.Merch, error) {
	if m, ok := r.items[id]; ok {
		return m, nil
	}
	return model.Merch{}, apierror.NotFound("merch item not found", id)
}

func (r *memMerchRepo) Create(_ context.Context, m model.Merch) error {
	r.items[m.ID] = m
	return nil
}

func (r *memMerchRepo) Update(_ context.Context, id string, patch model.UpdateMerchRequest) (model.Merch, error) {
	m, ok := r.items[id]
	if !ok {
		return model.Merch{}, apierror.NotFound("merch item not found", id)
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Price != nil {
		m.Price = *patch.Price
	}
	if patch.Size != nil {
		m.Size = *patch.Size
	}
	if patch.ImageURL != nil {
		m.ImageURL = *patch.ImageURL
	}
	m.UpdatedAt = time.Now().UTC()
	r.items[id] = m
	return m, nil
}

func (r *memMerchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apierror.NotFound("merch item not found", id)
	}
	delete(r.items, id)
	return nil
}

type memNewsRepo struct {
	articles map[string]model.News
}

func (r *memNewsRepo) List(_ context.Context) ([]model.News, error) {
	out := make([]model.News, 0, len(r.articles))
	for _, n := range r.articles {
		out = append(out, n)
	}
	return out, nil
}

func (r *memNewsRepo) FindByID(_ context.Context, id string) (model.News, error) {
	if n, ok := r.articles[id]; ok {
		return n, nil
	}
	return model.News{}, apierror.NotFound("news article not found", id)
}

func (r *memNewsRepo) Create(_ context.Context, n model.News) error {
	r.articles[n.ID] = n
	return nil
}

func (r *memNewsRepo) Update(_ context.Context, id string, patch model.UpdateNewsRequest) (model.News, error) {
	n, ok := r.articles[id]
	if !ok {
		return model.News{}, apierror.NotFound("news article not found", id)
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.ImageURL != nil {
		n.ImageURL = *patch.ImageURL
	}
	n.UpdatedAt = time.Now().UTC()
	r.articles[id] = n
	return n, nil
}

func (r *memNewsRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return apierror.NotFound("news article not found", id)
	}
	delete(r.articles, id)
	return nil
}

// newTestServer starts the full router with in-memory persistence, seeds one
// admin account and returns the server plus admin credentials.
func newTestServer(t *testing.T) (*httptest.Server, *auth.Credentials, model.User) {
	t.Helper()

	creds, err := auth.NewCredentials("test-secret", time.Hour, 4)
	require.NoError(t, err)

	userRepo := &memUserRepo{users: map[string]model.User{}}

	adminHash, err := creds.HashPassword("admin123")
	require.NoError(t, err)

	now := time.Now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@x.com",
		PasswordHash: adminHash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	userRepo.users[admin.ID] = admin

	authService := service.NewAuthService(userRepo, creds, nil)
	productService := service.NewProductService(&memProductRepo{products: map[string]model.Product{}}, nil)
	merchService := service.NewMerchService(&memMerchRepo{items: map[string]model.Merch{}}, nil)
	newsService := service.NewNewsService(&memNewsRepo{articles: map[string]model.News{}}, nil)

	cfg := &config.Config{
		ServerPort:     "8080",
		RequestTimeout: 30 * time.Second,
		DatabaseURL:    "postgres://unused",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		BcryptCost:     4,
		CORSOrigins:    []string{"*"},
	}

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(creds), router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Merch:   handler.NewMerchHandler(merchService),
		News:    handler.NewNewsHandler(newsService),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return server, creds, admin
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, method string, url string, body any, token string) (*http.Response, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func login(t *testing.T, serverURL string, username string, password string) string {
	t.Helper()

	resp, parsed := doJSON(t, http.MethodPost, serverURL+"/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func makeTokenWithSecret(t *testing.T, secret string, userID string, isAdmin bool, ttl time.Duration) string {
	t.Helper()

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"admin": isAdmin,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func makeExpiredToken(t *testing.T, secret string, userID string) string {
	t.Helper()
	return makeTokenWithSecret(t, secret, userID, false, -time.Hour)
}

func register(t *testing.T, serverURL string, username string, email string, password string) {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, serverURL+"/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}
