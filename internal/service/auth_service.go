package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-storefront/internal/auth"
	"go-storefront/internal/event"
	"go-storefront/internal/model"
	"go-storefront/pkg/apierror"
)

// UserRepository is the persistence collaborator the auth service needs.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	users UserRepository
	creds *auth.Credentials
	bus   event.Bus
}

func NewAuthService(users UserRepository, creds *auth.Credentials, bus event.Bus) *AuthService {
	return &AuthService{users: users, creds: creds, bus: bus}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	if err := req.Validate(); err != nil {
		return model.AuthUser{}, apierror.BadRequest("validation failed", err.Error())
	}

	usernameTaken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return model.AuthUser{}, err
	}
	if usernameTaken {
		return model.AuthUser{}, apierror.Conflict("username already exists", req.Username)
	}

	emailTaken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.AuthUser{}, err
	}
	if emailTaken {
		return model.AuthUser{}, apierror.Conflict("email already exists", req.Email)
	}

	hash, err := s.creds.HashPassword(req.Password)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		// Self-registration never grants admin.
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	publish(s.bus, event.TypeUserRegistered, user.ID, user.ID)
	return user.Public(), nil
}

// Login authenticates a username/password pair. Unknown usernames and wrong
// passwords produce the same response so neither can be probed separately.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthSession, error) {
	if err := req.Validate(); err != nil {
		return model.AuthSession{}, apierror.BadRequest("validation failed", err.Error())
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "NOT_FOUND" {
			return model.AuthSession{}, apierror.Unauthorized("invalid credentials")
		}
		return model.AuthSession{}, err
	}

	if !s.creds.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthSession{}, apierror.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.creds.IssueToken(user.ID, user.IsAdmin)
	if err != nil {
		return model.AuthSession{}, err
	}

	return model.AuthSession{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(time.Until(expiresAt).Seconds()),
		User:      user.Public(),
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}
