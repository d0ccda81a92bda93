package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrInvalidToken = errors.New("invalid token")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Resource related errors
	ErrProductNotFound = errors.New("product not found")
	ErrMerchNotFound   = errors.New("merch item not found")
	ErrNewsNotFound    = errors.New("news article not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
