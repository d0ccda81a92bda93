package model

import (
	"net/mail"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// emailAddress checks address syntax only, with no MX or domain
// existence checks, so addresses like a@x.com pass.
var emailAddress = validation.NewStringRule(func(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}, "must be a valid email address")

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 32)),
		validation.Field(&r.Email, validation.Required, emailAddress),
		// bcrypt ignores everything past 72 bytes.
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.01)),
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

// UpdateProductRequest carries only the fields present in the request body.
// Nil means "leave unchanged".
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	ImageURL    *string  `json:"image_url"`
}

func (r UpdateProductRequest) HasChanges() bool {
	return r.Name != nil || r.Description != nil || r.Price != nil || r.Quantity != nil || r.ImageURL != nil
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Price, validation.Min(0.01)),
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

type CreateMerchRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	ImageURL    string  `json:"image_url"`
}

func (r CreateMerchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.01)),
		validation.Field(&r.Size, validation.Length(0, 20)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

type UpdateMerchRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Size        *string  `json:"size"`
	ImageURL    *string  `json:"image_url"`
}

func (r UpdateMerchRequest) HasChanges() bool {
	return r.Name != nil || r.Description != nil || r.Price != nil || r.Size != nil || r.ImageURL != nil
}

func (r UpdateMerchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Price, validation.Min(0.01)),
		validation.Field(&r.Size, validation.Length(0, 20)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

type CreateNewsRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func (r CreateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.ImageURL, is.URL),
	)
}

type UpdateNewsRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

func (r UpdateNewsRequest) HasChanges() bool {
	return r.Title != nil || r.Content != nil || r.ImageURL != nil
}

func (r UpdateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 300)),
		validation.Field(&r.ImageURL, is.URL),
	)
}
